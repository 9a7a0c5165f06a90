package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectDelete deletes a project. Categories, subcategories and items
// go with it through cascade deletes.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := ownedProject(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(project); err != nil {
			log.Printf("project_delete: failed to delete project %s: %v", project.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Failed to delete project")
		}

		return e.JSON(http.StatusOK, map[string]string{"message": "Project deleted successfully"})
	}
}
