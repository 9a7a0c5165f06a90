package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"costestimator/collections"
	"costestimator/estimate"
	"costestimator/services"
)

// mergeItemFields overwrites the fields present in the body. Absent fields
// keep their current value.
func mergeItemFields(in *estimate.ItemInput, fields map[string]any) error {
	for _, name := range estimate.NumericFields {
		v, ok := fields[name]
		if !ok {
			continue
		}
		d, err := estimate.ParseDecimal(in.ID, name, v)
		if err != nil {
			return err
		}
		in.SetNumeric(name, d)
	}
	for _, name := range estimate.TextFields {
		if v, ok := fields[name]; ok {
			in.SetText(name, cast.ToString(v))
		}
	}
	return nil
}

// checkItemInput applies the strict input policy when it is enabled.
func checkItemInput(opts Options, in estimate.ItemInput) error {
	if !opts.StrictInputs {
		return nil
	}
	return estimate.Validate(in)
}

// itemRecordJSON is the stored item with its calculated values.
func itemRecordJSON(record *core.Record) map[string]any {
	out := itemResultJSON(estimate.Compute(services.ItemInputFromRecord(record)))
	out["project_id"] = record.GetString("project")
	out["category_id"] = record.GetString("category")
	out["subcategory_id"] = record.GetString("subcategory")
	out["sort_order"] = record.GetInt("sort_order")
	return out
}

// subcategoryInCategory reports whether the subcategory exists under the
// category.
func subcategoryInCategory(app core.App, subcategoryID, categoryID string) bool {
	sub, err := app.FindRecordById("subcategories", subcategoryID)
	return err == nil && sub.GetString("category") == categoryID
}

// siblingFilter selects the items sharing a parent: the category itself
// when subcategoryID is empty, otherwise the subcategory.
func siblingFilter(categoryID, subcategoryID string) (string, map[string]any) {
	if subcategoryID != "" {
		return "subcategory = {:subcategoryId}", map[string]any{"subcategoryId": subcategoryID}
	}
	return "category = {:categoryId} && subcategory = ''", map[string]any{"categoryId": categoryID}
}

// HandleItemCreate adds an item to a category of the project, or to one of
// the category's subcategories.
func HandleItemCreate(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := ownedProject(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		fields, err := decodeFields(e.Request)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}

		categoryID := cast.ToString(fields["category_id"])
		if categoryID == "" {
			return jsonFieldError(e, http.StatusBadRequest, "category_id", "category_id is required")
		}
		cat, err := app.FindRecordById("categories", categoryID)
		if err != nil || cat.GetString("project") != project.Id {
			return jsonError(e, http.StatusNotFound, "Category not found within this project")
		}

		subcategoryID := cast.ToString(fields["subcategory_id"])
		if subcategoryID != "" && !subcategoryInCategory(app, subcategoryID, categoryID) {
			return jsonFieldError(e, http.StatusBadRequest, "subcategory_id", "Invalid subcategory for this category")
		}

		var in estimate.ItemInput
		if err := mergeItemFields(&in, fields); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}
		if err := checkItemInput(opts, in); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("items")
		if err != nil {
			log.Printf("item_create: could not find items collection: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		filter, params := siblingFilter(categoryID, subcategoryID)

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		record.Set("category", categoryID)
		if subcategoryID != "" {
			record.Set("subcategory", subcategoryID)
		}
		record.Set("sort_order", collections.NextSortOrder(app, "items", filter, params))
		services.ApplyItemInput(record, in)

		if err := app.Save(record); err != nil {
			log.Printf("item_create: could not save item: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, itemRecordJSON(record))
	}
}

// HandleItemUpdate applies a partial update to an item. The item may be
// moved between its category and that category's subcategories.
func HandleItemUpdate(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := ownedItem(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Item not found")
		}

		fields, err := decodeFields(e.Request)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}

		_, hasSortOrder := fields["sort_order"]
		if v, ok := fields["subcategory_id"]; ok {
			subcategoryID := cast.ToString(v)
			categoryID := record.GetString("category")
			if subcategoryID != "" && !subcategoryInCategory(app, subcategoryID, categoryID) {
				return jsonFieldError(e, http.StatusBadRequest, "subcategory_id", "Invalid subcategory for this category")
			}
			if subcategoryID != record.GetString("subcategory") && !hasSortOrder {
				// A moved item goes to the end of its new parent.
				filter, params := siblingFilter(categoryID, subcategoryID)
				record.Set("sort_order", collections.NextSortOrder(app, "items", filter, params))
			}
			record.Set("subcategory", subcategoryID)
		}
		if v, ok := fields["sort_order"]; ok {
			n, err := cast.ToIntE(v)
			if err != nil {
				return jsonFieldError(e, http.StatusBadRequest, "sort_order", "sort_order must be an integer")
			}
			record.Set("sort_order", n)
		}

		in := services.ItemInputFromRecord(record)
		if err := mergeItemFields(&in, fields); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}
		if err := checkItemInput(opts, in); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		services.ApplyItemInput(record, in)
		if err := app.Save(record); err != nil {
			log.Printf("item_update: could not save item %s: %v", record.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, itemRecordJSON(record))
	}
}

// HandleItemDelete deletes an item.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := ownedItem(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("item_delete: failed to delete item %s: %v", record.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete item")
		}

		return e.JSON(http.StatusOK, map[string]string{"message": "Item deleted successfully"})
	}
}

// HandleCalculate returns the calculated values of an unsaved item, for
// live previews while editing.
func HandleCalculate(opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		fields, err := decodeFields(e.Request)
		if err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}

		in, err := estimate.ParseItemInput(cast.ToString(fields["id"]), fields)
		if err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}
		if err := checkItemInput(opts, in); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, itemResultJSON(estimate.Compute(in)))
	}
}
