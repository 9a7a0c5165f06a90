// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimator/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestUser creates an auth record in the users collection.
func CreateTestUser(t *testing.T, app *pocketbase.PocketBase, email string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("users")
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetPassword("test-password-123")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestProject creates a project owned by ownerID and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, ownerID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("project_name", name)
	record.Set("company_name", "Test Interiors")
	record.Set("project_address", "1 Test Plaza")
	record.Set("architect_info", "Test Architect")
	record.Set("project_date", "2026-01-15")
	record.Set("revision", "1")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestCategory creates a category under a project.
func CreateTestCategory(t *testing.T, app *pocketbase.PocketBase, projectID, name string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("categories")
	if err != nil {
		t.Fatalf("failed to find categories collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test category: %v", err)
	}

	return record
}

// CreateTestSubcategory creates a subcategory under a category.
func CreateTestSubcategory(t *testing.T, app *pocketbase.PocketBase, categoryID, name string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("subcategories")
	if err != nil {
		t.Fatalf("failed to find subcategories collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", categoryID)
	record.Set("name", name)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test subcategory: %v", err)
	}

	return record
}

// CreateTestItem creates an item with the reference numbers used across
// tests: 100 units, 10% waste, 5% attic, $2.00 material, $1.00 labor, 8% tax,
// 15% material markup and 10% add-on markup (client cost $409.40).
// subcategoryID may be empty for direct category items.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, projectID, categoryID, subcategoryID, description string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("items")
	if err != nil {
		t.Fatalf("failed to find items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("category", categoryID)
	if subcategoryID != "" {
		record.Set("subcategory", subcategoryID)
	}
	record.Set("sort_order", sortOrder)
	record.Set("tag_spec", "T-1")
	record.Set("description", description)
	record.Set("unit_of_measure", "SF")
	record.Set("material_qty", 100.0)
	record.Set("waste_factor_percent", 10.0)
	record.Set("attic_stock_percent", 5.0)
	record.Set("unit_cost_material", 2.0)
	record.Set("unit_cost_labor", 1.0)
	record.Set("tax_percent", 8.0)
	record.Set("markup_material_percent", 15.0)
	record.Set("markup_addons_percent", 10.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
