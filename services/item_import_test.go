package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"costestimator/estimate"
	"costestimator/testhelpers"
)

func TestValidateItemFile_CSV(t *testing.T) {
	csv := "Description,UoM,Material Qty,Waste %,Material,Tax %,Notes\n" +
		"Carpet tile,SY,\"1,250\",5%,$28.50,8.25,ignore me\n" +
		",,,,,,\n" +
		"Rubber base,LF,300,,2.10,8.25,\n"

	result, err := ValidateItemFile(strings.NewReader(csv), "items.CSV", false)
	if err != nil {
		t.Fatalf("ValidateItemFile() error = %v", err)
	}

	if result.TotalRows != 2 || result.ValidRows != 2 || result.ErrorRows != 0 {
		t.Errorf("counts = %d/%d/%d, want 2/2/0", result.TotalRows, result.ValidRows, result.ErrorRows)
	}
	if len(result.Unrecognized) != 1 || result.Unrecognized[0] != "Notes" {
		t.Errorf("Unrecognized = %v, want [Notes]", result.Unrecognized)
	}
	if len(result.ParsedRows) != 2 {
		t.Fatalf("got %d parsed rows, want 2", len(result.ParsedRows))
	}

	carpet := result.ParsedRows[0]
	assertDec(t, "material_qty", carpet.MaterialQty, "1250.00")
	assertDec(t, "waste", carpet.WasteFactorPercent, "5.00")
	assertDec(t, "material", carpet.UnitCostMaterial, "28.50")

	base := result.ParsedRows[1]
	if base.Description != "Rubber base" {
		t.Errorf("second row description = %q", base.Description)
	}
	if !base.WasteFactorPercent.IsZero() {
		t.Errorf("blank waste should be zero, got %s", base.WasteFactorPercent)
	}
}

func TestValidateItemFile_AcceptsFieldKeysAsHeaders(t *testing.T) {
	csv := "description,material_qty,unit_cost_labor\nPaint,100,1.5\n"

	result, err := ValidateItemFile(strings.NewReader(csv), "items.csv", false)
	if err != nil {
		t.Fatalf("ValidateItemFile() error = %v", err)
	}
	if len(result.ParsedRows) != 1 {
		t.Fatalf("got %d parsed rows, want 1", len(result.ParsedRows))
	}
	assertDec(t, "labor", result.ParsedRows[0].UnitCostLabor, "1.50")
}

func TestValidateItemFile_InvalidNumber(t *testing.T) {
	csv := "Description,Material Qty\nCarpet,lots\nBase,10\n"

	result, err := ValidateItemFile(strings.NewReader(csv), "items.csv", false)
	if err != nil {
		t.Fatalf("ValidateItemFile() error = %v", err)
	}

	if result.ErrorRows != 1 || result.ValidRows != 1 {
		t.Errorf("counts valid=%d error=%d, want 1/1", result.ValidRows, result.ErrorRows)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(result.Errors))
	}
	e := result.Errors[0]
	if e.Row != 2 || e.Field != "Material Qty" {
		t.Errorf("error = %+v, want row 2 Material Qty", e)
	}
	if len(result.ParsedRows) != 1 || result.ParsedRows[0].Description != "Base" {
		t.Errorf("only the valid row should be parsed, got %+v", result.ParsedRows)
	}
}

func TestValidateItemFile_Strict(t *testing.T) {
	csv := "Description,Material Qty,Tax %\nCarpet,-5,2000\n"

	lenient, err := ValidateItemFile(strings.NewReader(csv), "items.csv", false)
	if err != nil {
		t.Fatalf("ValidateItemFile() error = %v", err)
	}
	if lenient.ErrorRows != 0 {
		t.Errorf("lenient mode should accept negative input, got %+v", lenient.Errors)
	}

	strict, err := ValidateItemFile(strings.NewReader(csv), "items.csv", true)
	if err != nil {
		t.Fatalf("ValidateItemFile() error = %v", err)
	}
	if strict.ErrorRows != 1 {
		t.Fatalf("strict ErrorRows = %d, want 1", strict.ErrorRows)
	}
	if len(strict.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %+v", len(strict.Errors), strict.Errors)
	}
	if strict.Errors[0].Field != "Material Qty" || strict.Errors[1].Field != "Tax %" {
		t.Errorf("errors = %+v, want Material Qty then Tax %%", strict.Errors)
	}
}

func TestValidateItemFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetSheetRow(sheet, "A1", &[]any{"Description", "Material Qty", "Labor"})
	f.SetSheetRow(sheet, "A2", &[]any{"Paint", 200, 0.85})
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	f.Close()

	result, err := ValidateItemFile(buf, "items.xlsx", false)
	if err != nil {
		t.Fatalf("ValidateItemFile() error = %v", err)
	}
	if len(result.ParsedRows) != 1 {
		t.Fatalf("got %d parsed rows, want 1", len(result.ParsedRows))
	}
	assertDec(t, "labor", result.ParsedRows[0].UnitCostLabor, "0.85")
}

func TestValidateItemFile_Rejects(t *testing.T) {
	if _, err := ValidateItemFile(strings.NewReader("a,b"), "items.txt", false); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := ValidateItemFile(strings.NewReader("Description\n"), "items.csv", false); err == nil {
		t.Error("expected error for header-only file")
	}
}

func TestCommitItemImport_AppendsAfterExisting(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")
	cat := testhelpers.CreateTestCategory(t, app, proj.Id, "Floors", 1)
	testhelpers.CreateTestItem(t, app, proj.Id, cat.Id, "", "Existing", 4)

	rows := []estimate.ItemInput{
		referenceItem("", "Imported A"),
		referenceItem("", "Imported B"),
	}
	result, err := CommitItemImport(app, proj.Id, cat.Id, "", rows)
	if err != nil {
		t.Fatalf("CommitItemImport() error = %v", err)
	}
	if result.Imported != 2 || result.Failed != 0 || result.RolledBack {
		t.Errorf("result = %+v", result)
	}

	tree, err := LoadProjectTree(app, proj.Id, user.Id)
	if err != nil {
		t.Fatalf("LoadProjectTree() error = %v", err)
	}
	items := tree.Categories[0].Items
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Description != "Existing" || items[1].Description != "Imported A" || items[2].Description != "Imported B" {
		t.Errorf("order = %s, %s, %s", items[0].Description, items[1].Description, items[2].Description)
	}
	assertDec(t, "grand total", BuildEstimate(tree).Totals.TotalClientCost, "1228.20")
}

func TestCommitItemImport_IntoSubcategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")
	cat := testhelpers.CreateTestCategory(t, app, proj.Id, "Floors", 1)
	sub := testhelpers.CreateTestSubcategory(t, app, cat.Id, "Base", 1)

	result, err := CommitItemImport(app, proj.Id, cat.Id, sub.Id, []estimate.ItemInput{referenceItem("", "Cove base")})
	if err != nil {
		t.Fatalf("CommitItemImport() error = %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1", result.Imported)
	}

	tree, _ := LoadProjectTree(app, proj.Id, user.Id)
	if len(tree.Categories[0].Items) != 0 {
		t.Errorf("item should not be a direct category item")
	}
	if got := tree.Categories[0].Subcategories[0].Items; len(got) != 1 || got[0].Description != "Cove base" {
		t.Errorf("subcategory items = %+v", got)
	}
}

func TestGenerateErrorReport(t *testing.T) {
	b, err := GenerateErrorReport([]ValidationError{
		{Row: 2, Field: "Material Qty", Message: "lots is not a number"},
		{Row: 5, Field: "Tax %", Message: "=cmd"},
	})
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(b))
	if err != nil {
		t.Fatalf("report is not valid Excel: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Errors", "B2"); v != "Material Qty" {
		t.Errorf("B2 = %q, want Material Qty", v)
	}
	if v, _ := f.GetCellValue("Errors", "C3"); v != "'=cmd" {
		t.Errorf("C3 = %q, want sanitized message", v)
	}
}
