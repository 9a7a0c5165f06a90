package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/services"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// contentDisposition builds an attachment header with an RFC 5987 encoded
// filename.
func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename*=utf-8''%s", url.PathEscape(filename))
}

type renderFunc func(services.EstimateData, services.ExportConfig) ([]byte, error)

// handleExport loads the project estimate, renders it and streams the file.
func handleExport(app *pocketbase.PocketBase, area, ext, contentType string, render renderFunc) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var cfg services.ExportConfig
		if err := decodeJSON(e.Request, &cfg); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid export configuration")
		}

		data, err := services.LoadEstimate(app, e.Request.PathValue("id"), authUserID(e))
		if err != nil {
			if errors.Is(err, services.ErrProjectNotFound) {
				return jsonError(e, http.StatusNotFound, "Project not found")
			}
			log.Printf("%s: %v", area, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load project")
		}

		body, err := render(data, cfg)
		if err != nil {
			log.Printf("%s: failed to generate: %v", area, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate "+ext+" file")
		}

		filename := services.ExportFilename(data.Project.ProjectName, cfg.CustomFilename, ext)

		e.Response.Header().Set("Content-Type", contentType)
		e.Response.Header().Set("Content-Disposition", contentDisposition(filename))
		e.Response.WriteHeader(http.StatusOK)
		e.Response.Write(body)
		return nil
	}
}

// HandleExportExcel returns a handler that generates and downloads the
// estimate as an Excel workbook.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return handleExport(app, "export_excel", "xlsx", contentTypeXLSX, services.GenerateExcel)
}

// HandleExportPDF returns a handler that generates and downloads the
// estimate as a PDF document.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return handleExport(app, "export_pdf", "pdf", contentTypePDF, services.GeneratePDF)
}
