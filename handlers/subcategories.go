package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/collections"
)

// HandleSubcategoryCreate adds a subcategory at the end of a category.
func HandleSubcategoryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cat, err := ownedCategory(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Category not found")
		}

		name, ok, herr := readName(e)
		if !ok {
			return herr
		}

		col, err := app.FindCollectionByNameOrId("subcategories")
		if err != nil {
			log.Printf("subcategory_create: could not find subcategories collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("category", cat.Id)
		record.Set("name", name)
		record.Set("sort_order", collections.NextSortOrder(app, "subcategories",
			"category = {:categoryId}", map[string]any{"categoryId": cat.Id}))

		if err := app.Save(record); err != nil {
			log.Printf("subcategory_create: could not save subcategory: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, sectionJSON(record, "category_id"))
	}
}

// HandleSubcategoryRename changes a subcategory's name.
func HandleSubcategoryRename(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sub, _, err := ownedSubcategory(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Subcategory not found")
		}

		name, ok, herr := readName(e)
		if !ok {
			return herr
		}

		sub.Set("name", name)
		if err := app.Save(sub); err != nil {
			log.Printf("subcategory_rename: could not save subcategory %s: %v", sub.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, sectionJSON(sub, "category_id"))
	}
}

// HandleSubcategoryDelete deletes a subcategory and its items.
func HandleSubcategoryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sub, _, err := ownedSubcategory(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Subcategory not found")
		}

		if err := app.Delete(sub); err != nil {
			log.Printf("subcategory_delete: failed to delete subcategory %s: %v", sub.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete subcategory")
		}

		return e.JSON(http.StatusOK, map[string]string{"message": "Subcategory deleted successfully"})
	}
}
