package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/services"
)

// HandleProjectView returns a project with its full category tree.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		project, err := ownedProject(app, e, projectID)
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		tree, err := services.ProjectTreeFromRecord(app, project)
		if err != nil {
			log.Printf("project_view: load tree %s: %v", projectID, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load project")
		}

		return e.JSON(http.StatusOK, projectTreeJSON(project, tree))
	}
}
