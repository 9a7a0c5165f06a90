package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"costestimator/collections"
	"costestimator/estimate"
)

// ErrProjectNotFound is returned when a project does not exist or belongs to
// another user.
var ErrProjectNotFound = errors.New("project not found")

// FindOwnedProject returns the project only if ownerID owns it.
func FindOwnedProject(app core.App, projectID, ownerID string) (*core.Record, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if project.GetString("owner") != ownerID {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// ProjectInfoFromRecord maps a projects record to its report header. The
// logo is not loaded.
func ProjectInfoFromRecord(project *core.Record) ProjectInfo {
	return ProjectInfo{
		ID:             project.Id,
		CompanyName:    project.GetString("company_name"),
		ProjectName:    project.GetString("project_name"),
		ProjectAddress: project.GetString("project_address"),
		ArchitectInfo:  project.GetString("architect_info"),
		ProjectDate:    project.GetString("project_date"),
		Revision:       project.GetString("revision"),
	}
}

// ItemInputFromRecord maps an items record to calculator input. Stored
// numbers are normalised to two fractional digits, the precision of the
// input columns.
func ItemInputFromRecord(r *core.Record) estimate.ItemInput {
	in := estimate.ItemInput{ID: r.Id}
	for _, name := range collections.TextItemFields {
		in.SetText(name, r.GetString(name))
	}
	for _, name := range collections.NumericItemFields {
		in.SetNumeric(name, estimate.Round2(decimal.NewFromFloat(r.GetFloat(name))))
	}
	return in
}

// LoadProjectTree reads a project's categories, subcategories and items in
// display order (sort_order, then creation time).
func LoadProjectTree(app core.App, projectID, ownerID string) (ProjectTree, error) {
	project, err := FindOwnedProject(app, projectID, ownerID)
	if err != nil {
		return ProjectTree{}, err
	}
	return ProjectTreeFromRecord(app, project)
}

// ProjectTreeFromRecord is LoadProjectTree for a project record the caller
// has already fetched and authorised.
func ProjectTreeFromRecord(app core.App, project *core.Record) (ProjectTree, error) {
	projectID := project.Id
	tree := ProjectTree{Project: ProjectInfoFromRecord(project)}

	cats, err := app.FindRecordsByFilter("categories", "project = {:projectId}", "sort_order,created", 0, 0,
		map[string]any{"projectId": projectID})
	if err != nil {
		return ProjectTree{}, fmt.Errorf("query categories: %w", err)
	}

	items, err := app.FindRecordsByFilter("items", "project = {:projectId}", "sort_order,created", 0, 0,
		map[string]any{"projectId": projectID})
	if err != nil {
		return ProjectTree{}, fmt.Errorf("query items: %w", err)
	}

	// Group items once; the sort above keeps each group ordered.
	direct := make(map[string][]estimate.ItemInput)
	nested := make(map[string][]estimate.ItemInput)
	for _, r := range items {
		in := ItemInputFromRecord(r)
		if sub := r.GetString("subcategory"); sub != "" {
			nested[sub] = append(nested[sub], in)
		} else {
			direct[r.GetString("category")] = append(direct[r.GetString("category")], in)
		}
	}

	for _, c := range cats {
		node := CategoryNode{ID: c.Id, Name: c.GetString("name"), Items: direct[c.Id]}

		subs, err := app.FindRecordsByFilter("subcategories", "category = {:categoryId}", "sort_order,created", 0, 0,
			map[string]any{"categoryId": c.Id})
		if err != nil {
			return ProjectTree{}, fmt.Errorf("query subcategories of %s: %w", c.Id, err)
		}
		for _, s := range subs {
			node.Subcategories = append(node.Subcategories, SubcategoryNode{
				ID:    s.Id,
				Name:  s.GetString("name"),
				Items: nested[s.Id],
			})
		}

		tree.Categories = append(tree.Categories, node)
	}

	return tree, nil
}

// LoadLogo reads the project's logo file from app storage. It returns nil
// bytes when the project has no logo.
func LoadLogo(app core.App, project *core.Record) ([]byte, string, error) {
	name := project.GetString("logo")
	if name == "" {
		return nil, "", nil
	}

	fsys, err := app.NewFilesystem()
	if err != nil {
		return nil, "", fmt.Errorf("open filesystem: %w", err)
	}
	defer fsys.Close()

	r, err := fsys.GetReader(project.BaseFilesPath() + "/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("open logo %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read logo %s: %w", name, err)
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "jpeg" {
		ext = "jpg"
	}
	return data, ext, nil
}

// LoadEstimate loads the project tree with its logo and calculates it.
func LoadEstimate(app core.App, projectID, ownerID string) (EstimateData, error) {
	project, err := FindOwnedProject(app, projectID, ownerID)
	if err != nil {
		return EstimateData{}, err
	}
	return EstimateFromRecord(app, project)
}

// EstimateFromRecord is LoadEstimate for an already fetched project record.
func EstimateFromRecord(app core.App, project *core.Record) (EstimateData, error) {
	tree, err := ProjectTreeFromRecord(app, project)
	if err != nil {
		return EstimateData{}, err
	}

	logo, ext, err := LoadLogo(app, project)
	if err != nil {
		// Reports still render without the logo.
		log.Printf("estimate: load logo: %v", err)
	}
	tree.Project.Logo = logo
	tree.Project.LogoExt = ext

	return BuildEstimate(tree), nil
}

// ApplyItemInput writes the calculator input onto an items record. Numbers
// are stored rounded to two places.
func ApplyItemInput(r *core.Record, in estimate.ItemInput) {
	for _, name := range collections.TextItemFields {
		r.Set(name, in.Text(name))
	}
	for _, name := range collections.NumericItemFields {
		r.Set(name, estimate.Round2(in.Numeric(name)).InexactFloat64())
	}
}
