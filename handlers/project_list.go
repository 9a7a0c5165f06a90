package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectList returns the caller's projects, newest first.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(
			"projects",
			"owner = {:owner}",
			"-created", 0, 0,
			map[string]any{"owner": authUserID(e)},
		)
		if err != nil {
			log.Printf("project_list: query failed: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load projects")
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, projectJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}
