package services

import (
	"errors"
	"testing"

	"costestimator/testhelpers"
)

func TestLoadProjectTree_OrdersHierarchy(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")

	walls := testhelpers.CreateTestCategory(t, app, proj.Id, "Walls", 2)
	floors := testhelpers.CreateTestCategory(t, app, proj.Id, "Floors", 1)
	base := testhelpers.CreateTestSubcategory(t, app, floors.Id, "Base", 1)

	testhelpers.CreateTestItem(t, app, proj.Id, floors.Id, base.Id, "Rubber base", 1)
	testhelpers.CreateTestItem(t, app, proj.Id, floors.Id, "", "Carpet B", 2)
	testhelpers.CreateTestItem(t, app, proj.Id, floors.Id, "", "Carpet A", 1)
	testhelpers.CreateTestItem(t, app, proj.Id, walls.Id, "", "Paint", 1)

	tree, err := LoadProjectTree(app, proj.Id, user.Id)
	if err != nil {
		t.Fatalf("LoadProjectTree() error = %v", err)
	}

	if tree.Project.ProjectName != "Clinic" {
		t.Errorf("ProjectName = %q, want Clinic", tree.Project.ProjectName)
	}
	if len(tree.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(tree.Categories))
	}
	if tree.Categories[0].Name != "Floors" || tree.Categories[1].Name != "Walls" {
		t.Errorf("category order = %s, %s", tree.Categories[0].Name, tree.Categories[1].Name)
	}

	f := tree.Categories[0]
	if len(f.Items) != 2 || f.Items[0].Description != "Carpet A" || f.Items[1].Description != "Carpet B" {
		t.Errorf("direct items = %+v", f.Items)
	}
	if len(f.Subcategories) != 1 || len(f.Subcategories[0].Items) != 1 {
		t.Fatalf("subcategories = %+v", f.Subcategories)
	}
	if f.Subcategories[0].Items[0].Description != "Rubber base" {
		t.Errorf("subcategory item = %q", f.Subcategories[0].Items[0].Description)
	}

	data := BuildEstimate(tree)
	assertDec(t, "grand total", data.Totals.TotalClientCost, "1637.60")
	if data.Categories[0].Subcategories[0].Items[0].ItemNo != 3 {
		t.Errorf("subcategory item should be numbered after direct items")
	}
}

func TestLoadProjectTree_OtherOwner(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "owner@example.com")
	other := testhelpers.CreateTestUser(t, app, "other@example.com")
	proj := testhelpers.CreateTestProject(t, app, owner.Id, "Private")

	_, err := LoadProjectTree(app, proj.Id, other.Id)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("error = %v, want ErrProjectNotFound", err)
	}
}

func TestLoadProjectTree_Missing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")

	_, err := LoadProjectTree(app, "doesnotexist123", user.Id)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("error = %v, want ErrProjectNotFound", err)
	}
}

func TestItemInputFromRecord_ReadsAllFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")
	cat := testhelpers.CreateTestCategory(t, app, proj.Id, "Floors", 1)
	rec := testhelpers.CreateTestItem(t, app, proj.Id, cat.Id, "", "Carpet", 1)

	in := ItemInputFromRecord(rec)

	if in.ID != rec.Id || in.Description != "Carpet" || in.UnitOfMeasure != "SF" {
		t.Errorf("text fields = %+v", in)
	}
	assertDec(t, "material_qty", in.MaterialQty, "100.00")
	assertDec(t, "waste_factor_percent", in.WasteFactorPercent, "10.00")
	assertDec(t, "markup_addons_percent", in.MarkupAddonsPercent, "10.00")
}

func TestLoadEstimate_NoLogo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")
	cat := testhelpers.CreateTestCategory(t, app, proj.Id, "Floors", 1)
	testhelpers.CreateTestItem(t, app, proj.Id, cat.Id, "", "Carpet", 1)

	data, err := LoadEstimate(app, proj.Id, user.Id)
	if err != nil {
		t.Fatalf("LoadEstimate() error = %v", err)
	}
	if len(data.Project.Logo) != 0 {
		t.Errorf("expected no logo bytes")
	}
	assertDec(t, "grand total", data.Totals.TotalClientCost, "409.40")
}

func TestEstimateFromRecord_UsesGivenRecord(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")
	cat := testhelpers.CreateTestCategory(t, app, proj.Id, "Floors", 1)
	testhelpers.CreateTestItem(t, app, proj.Id, cat.Id, "", "Carpet", 1)

	// An unsaved change shows the record is used as passed, not re-read.
	proj.Set("project_name", "Clinic Rev B")

	data, err := EstimateFromRecord(app, proj)
	if err != nil {
		t.Fatalf("EstimateFromRecord() error = %v", err)
	}
	if data.Project.ProjectName != "Clinic Rev B" {
		t.Errorf("ProjectName = %q, want Clinic Rev B", data.Project.ProjectName)
	}
	if data.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", data.ItemCount)
	}
	assertDec(t, "grand total", data.Totals.TotalClientCost, "409.40")
}

func TestLoadEstimate_OtherOwner(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	owner := testhelpers.CreateTestUser(t, app, "owner@example.com")
	other := testhelpers.CreateTestUser(t, app, "other@example.com")
	proj := testhelpers.CreateTestProject(t, app, owner.Id, "Clinic")

	if _, err := LoadEstimate(app, proj.Id, other.Id); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("LoadEstimate() error = %v, want ErrProjectNotFound", err)
	}
}
