// Package services loads project estimates from PocketBase and renders them
// as Excel workbooks, PDF documents and import templates.
package services

import "costestimator/estimate"

// ProjectInfo is the report header of a project.
type ProjectInfo struct {
	ID             string
	CompanyName    string
	ProjectName    string
	ProjectAddress string
	ArchitectInfo  string
	ProjectDate    string
	Revision       string
	// Logo holds the raw image bytes, empty when the project has no logo.
	Logo    []byte
	LogoExt string // "png" or "jpg"
}

// SubcategoryNode is a subcategory with its items in display order.
type SubcategoryNode struct {
	ID    string
	Name  string
	Items []estimate.ItemInput
}

// CategoryNode holds a category's direct items and its subcategories, both
// in display order.
type CategoryNode struct {
	ID            string
	Name          string
	Items         []estimate.ItemInput
	Subcategories []SubcategoryNode
}

// ProjectTree is a project's full item hierarchy, already ordered.
type ProjectTree struct {
	Project    ProjectInfo
	Categories []CategoryNode
}

// SubcategorySection is a calculated subcategory.
type SubcategorySection struct {
	ID       string
	Name     string
	Items    []estimate.ItemResult
	Subtotal estimate.GrandTotals
}

// CategorySection is a calculated category. Subtotal covers its direct items
// and all of its subcategories.
type CategorySection struct {
	ID            string
	Name          string
	Items         []estimate.ItemResult
	Subcategories []SubcategorySection
	Subtotal      estimate.GrandTotals
}

// EstimateData holds everything a report renderer needs.
type EstimateData struct {
	Project    ProjectInfo
	Categories []CategorySection
	ItemCount  int
	Totals     estimate.GrandTotals
}

// BuildEstimate calculates every item of the tree and numbers them 1..N in
// traversal order: categories in order, each category's direct items first,
// then its subcategories in order. Grand totals cover all items.
func BuildEstimate(tree ProjectTree) EstimateData {
	data := EstimateData{Project: tree.Project}

	var all []estimate.ItemResult
	next := 1

	calc := func(in estimate.ItemInput) estimate.ItemResult {
		r := estimate.Compute(in)
		r.ItemNo = next
		next++
		all = append(all, r)
		return r
	}

	for _, cat := range tree.Categories {
		section := CategorySection{ID: cat.ID, Name: cat.Name}

		for _, in := range cat.Items {
			r := calc(in)
			section.Items = append(section.Items, r)
			section.Subtotal.Add(r)
		}

		for _, sub := range cat.Subcategories {
			subSection := SubcategorySection{ID: sub.ID, Name: sub.Name}
			for _, in := range sub.Items {
				r := calc(in)
				subSection.Items = append(subSection.Items, r)
				subSection.Subtotal.Add(r)
				section.Subtotal.Add(r)
			}
			section.Subcategories = append(section.Subcategories, subSection)
		}

		data.Categories = append(data.Categories, section)
	}

	data.ItemCount = len(all)
	data.Totals = estimate.Aggregate(all)
	return data
}
