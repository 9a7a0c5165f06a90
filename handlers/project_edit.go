package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectUpdate applies a partial update to a project. Only fields
// present in the body change.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := ownedProject(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		var req projectRequest
		if err := decodeJSON(e.Request, &req); err != nil {
			return jsonError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		req.trim()
		if err := req.validate(false); err != nil {
			if handled, herr := inputError(e, err); handled {
				return herr
			}
			return jsonError(e, http.StatusBadRequest, err.Error())
		}

		req.apply(project)
		if err := app.Save(project); err != nil {
			log.Printf("project_edit: could not save project %s: %v", project.Id, err)
			return jsonError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, projectJSON(project))
	}
}
