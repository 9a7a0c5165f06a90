package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// DefaultRevision is the revision label of a project that has never been
// revised.
const DefaultRevision = "1"

// MigrateBlankRevisions sets revision to DefaultRevision on every project
// that has none. Safe to call on every startup -- returns early if nothing
// to migrate.
func MigrateBlankRevisions(app core.App) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	blank, err := app.FindRecordsByFilter(projectsCol, "revision = ''", "", 0, 0)
	if err != nil {
		return fmt.Errorf("migrate: could not query projects without revision: %w", err)
	}

	if len(blank) == 0 {
		return nil
	}

	log.Printf("migrate: found %d project(s) without a revision -- defaulting to %q...\n", len(blank), DefaultRevision)

	for _, p := range blank {
		p.Set("revision", DefaultRevision)
		if err := app.Save(p); err != nil {
			log.Printf("migrate: failed to set revision on project %s: %v\n", p.Id, err)
			continue
		}
	}

	log.Println("migrate: project revision migration complete.")
	return nil
}
