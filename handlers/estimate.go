package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/services"
	"costestimator/templates"
)

// loadOwnedEstimate loads and calculates the caller's project.
func loadOwnedEstimate(app core.App, e *core.RequestEvent, area string) (*core.Record, services.EstimateData, bool, error) {
	projectID := e.Request.PathValue("id")

	project, err := ownedProject(app, e, projectID)
	if err != nil {
		return nil, services.EstimateData{}, false, jsonError(e, http.StatusNotFound, "Project not found")
	}

	tree, err := services.ProjectTreeFromRecord(app, project)
	if err != nil {
		log.Printf("%s: load tree %s: %v", area, projectID, err)
		return nil, services.EstimateData{}, false, jsonError(e, http.StatusInternalServerError, "Failed to load project")
	}

	return project, services.BuildEstimate(tree), true, nil
}

// HandleEstimateJSON returns the calculated estimate of a project.
func HandleEstimateJSON(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, data, ok, herr := loadOwnedEstimate(app, e, "estimate_json")
		if !ok {
			return herr
		}
		return e.JSON(http.StatusOK, estimateJSON(project, data))
	}
}

// HandleEstimatePage renders the calculated estimate as an HTML page.
// Colours may be overridden with query parameters named after the palette
// keys, e.g. ?category_bg=%23ffeecc.
func HandleEstimatePage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, data, ok, herr := loadOwnedEstimate(app, e, "estimate_page")
		if !ok {
			return herr
		}

		cfg := services.ExportConfig{Colors: map[string]string{}}
		query := e.Request.URL.Query()
		for key := range services.DefaultColors {
			if v := query.Get(key); v != "" {
				cfg.Colors[key] = v
			}
		}

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		component := templates.EstimatePage(templates.EstimatePageData{
			Estimate: data,
			LogoURL:  logoURL(project),
			Colors:   cfg.Palette(),
		})
		return component.Render(e.Request.Context(), e.Response)
	}
}
