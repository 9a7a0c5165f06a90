package collections_test

import (
	"testing"

	"costestimator/collections"
	"costestimator/testhelpers"
)

func TestSeedDemoProject_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "seed@example.com")

	project, err := collections.SeedDemoProject(app, owner.Id)
	if err != nil {
		t.Fatalf("SeedDemoProject() error: %v", err)
	}
	if project.GetString("project_name") != collections.DemoProjectName {
		t.Errorf("project name = %q, want %q", project.GetString("project_name"), collections.DemoProjectName)
	}
	if project.GetString("owner") != owner.Id {
		t.Errorf("owner = %q, want %q", project.GetString("owner"), owner.Id)
	}

	cats, _ := app.FindRecordsByFilter("categories", "project = {:p}", "sort_order", 0, 0, map[string]any{"p": project.Id})
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].GetString("name") != "Flooring" {
		t.Errorf("first category = %q, want Flooring", cats[0].GetString("name"))
	}

	items, _ := app.FindRecordsByFilter("items", "project = {:p}", "", 0, 0, map[string]any{"p": project.Id})
	if len(items) != 5 {
		t.Errorf("expected 5 items, got %d", len(items))
	}

	subs, _ := app.FindRecordsByFilter("subcategories", "category = {:c}", "sort_order", 0, 0, map[string]any{"c": cats[1].Id})
	if len(subs) != 2 {
		t.Errorf("expected 2 wall subcategories, got %d", len(subs))
	}
}

func TestSeedDemoProject_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "seed-twice@example.com")

	first, err := collections.SeedDemoProject(app, owner.Id)
	if err != nil {
		t.Fatalf("first SeedDemoProject() error: %v", err)
	}
	second, err := collections.SeedDemoProject(app, owner.Id)
	if err != nil {
		t.Fatalf("second SeedDemoProject() error: %v", err)
	}
	if first.Id != second.Id {
		t.Errorf("second seed created a new project: %s vs %s", first.Id, second.Id)
	}

	items, _ := app.FindRecordsByFilter("items", "project = {:p}", "", 0, 0, map[string]any{"p": first.Id})
	if len(items) != 5 {
		t.Errorf("expected 5 items after reseed, got %d", len(items))
	}
}

func TestSeedDemoProject_PerOwner(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	a := testhelpers.CreateTestUser(t, app, "owner-a@example.com")
	b := testhelpers.CreateTestUser(t, app, "owner-b@example.com")

	pa, err := collections.SeedDemoProject(app, a.Id)
	if err != nil {
		t.Fatalf("seed a: %v", err)
	}
	pb, err := collections.SeedDemoProject(app, b.Id)
	if err != nil {
		t.Fatalf("seed b: %v", err)
	}
	if pa.Id == pb.Id {
		t.Error("each owner should get their own demo project")
	}
}
