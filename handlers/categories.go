package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/collections"
)

type nameRequest struct {
	Name string `json:"name"`
}

// readName decodes {"name": ...} and requires a non-blank name.
func readName(e *core.RequestEvent) (string, bool, error) {
	var req nameRequest
	if err := decodeJSON(e.Request, &req); err != nil {
		return "", false, jsonError(e, http.StatusBadRequest, "Invalid JSON body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", false, jsonFieldError(e, http.StatusBadRequest, "name", "Name is required")
	}
	return name, true, nil
}

func sectionJSON(rec *core.Record, parentField string) map[string]any {
	return map[string]any{
		"id":         rec.Id,
		"name":       rec.GetString("name"),
		parentField:  rec.GetString(strings.TrimSuffix(parentField, "_id")),
		"sort_order": rec.GetInt("sort_order"),
	}
}

// HandleCategoryCreate adds a category at the end of a project.
func HandleCategoryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := ownedProject(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		name, ok, herr := readName(e)
		if !ok {
			return herr
		}

		col, err := app.FindCollectionByNameOrId("categories")
		if err != nil {
			log.Printf("category_create: could not find categories collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		record.Set("name", name)
		record.Set("sort_order", collections.NextSortOrder(app, "categories",
			"project = {:projectId}", map[string]any{"projectId": project.Id}))

		if err := app.Save(record); err != nil {
			log.Printf("category_create: could not save category: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, sectionJSON(record, "project_id"))
	}
}

// HandleCategoryRename changes a category's name.
func HandleCategoryRename(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cat, err := ownedCategory(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Category not found")
		}

		name, ok, herr := readName(e)
		if !ok {
			return herr
		}

		cat.Set("name", name)
		if err := app.Save(cat); err != nil {
			log.Printf("category_rename: could not save category %s: %v", cat.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, sectionJSON(cat, "project_id"))
	}
}

// HandleCategoryDelete deletes a category with its subcategories and items.
func HandleCategoryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cat, err := ownedCategory(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Category not found")
		}

		if err := app.Delete(cat); err != nil {
			log.Printf("category_delete: failed to delete category %s: %v", cat.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete category")
		}

		return e.JSON(http.StatusOK, map[string]string{"message": "Category deleted successfully"})
	}
}
