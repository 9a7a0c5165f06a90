package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectLogo replaces the project's logo with the uploaded "logo"
// file. PocketBase enforces the size and image type limits of the field.
func HandleProjectLogo(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := ownedProject(app, e, e.Request.PathValue("id"))
		if err != nil {
			return jsonError(e, http.StatusNotFound, "Project not found")
		}

		files, err := e.FindUploadedFiles("logo")
		if err != nil || len(files) == 0 {
			return jsonFieldError(e, http.StatusBadRequest, "logo", "A logo file is required")
		}

		project.Set("logo", files[0])
		if err := app.Save(project); err != nil {
			log.Printf("project_logo: could not save logo for %s: %v", project.Id, err)
			return jsonFieldError(e, http.StatusBadRequest, "logo", "Logo must be a PNG or JPEG image up to 5 MB")
		}

		return e.JSON(http.StatusOK, projectJSON(project))
	}
}
