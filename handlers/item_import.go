package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/services"
)

// HandleItemImportTemplate downloads the .xlsx template for bulk item import.
func HandleItemImportTemplate() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := services.GenerateItemTemplate()
		if err != nil {
			log.Printf("item_import: template: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", contentTypeXLSX)
		e.Response.Header().Set("Content-Disposition", contentDisposition("Item_Import_Template.xlsx"))
		e.Response.WriteHeader(http.StatusOK)
		e.Response.Write(body)
		return nil
	}
}

// HandleItemImport validates an uploaded .csv or .xlsx file and, when every
// row is valid, appends the items to the category (or to the subcategory
// named by the "subcategory_id" form field). Files with errors import
// nothing; ?report=xlsx returns the errors as a workbook instead of JSON.
func HandleItemImport(app *pocketbase.PocketBase, opts Options) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cat, err := ownedCategory(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Category not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return jsonError(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		subcategoryID := e.Request.FormValue("subcategory_id")
		if subcategoryID != "" && !subcategoryInCategory(app, subcategoryID, cat.Id) {
			return jsonFieldError(e, http.StatusBadRequest, "subcategory_id", "Invalid subcategory for this category")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return jsonFieldError(e, http.StatusBadRequest, "file", "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateItemFile(file, header.Filename, opts.StrictInputs)
		if err != nil {
			return jsonFieldError(e, http.StatusBadRequest, "file", err.Error())
		}

		if result.ErrorRows > 0 {
			if e.Request.URL.Query().Get("report") == "xlsx" {
				report, err := services.GenerateErrorReport(result.Errors)
				if err != nil {
					log.Printf("item_import: error report: %v", err)
					return jsonError(e, http.StatusInternalServerError, "Failed to generate error report")
				}
				e.Response.Header().Set("Content-Type", contentTypeXLSX)
				e.Response.Header().Set("Content-Disposition", contentDisposition("Import_Errors.xlsx"))
				e.Response.WriteHeader(http.StatusUnprocessableEntity)
				e.Response.Write(report)
				return nil
			}
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		imported, err := services.CommitItemImport(app, cat.GetString("project"), cat.Id, subcategoryID, result.ParsedRows)
		if err != nil {
			log.Printf("item_import: commit into %s: %v", cat.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Import failed")
		}

		return e.JSON(http.StatusOK, imported)
	}
}
