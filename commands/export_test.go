package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"costestimator/testhelpers"
)

func TestExportProjects_WritesFiles(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	clinic := testhelpers.CreateTestProject(t, app, user.Id, "Clinic Fit-Out")
	office := testhelpers.CreateTestProject(t, app, user.Id, "Office")
	cat := testhelpers.CreateTestCategory(t, app, clinic.Id, "Floors", 1)
	testhelpers.CreateTestItem(t, app, clinic.Id, cat.Id, "", "Carpet", 1)

	out := t.TempDir()
	paths, err := ExportProjects(context.Background(), app, ExportOptions{
		ProjectIDs:  []string{clinic.Id, office.Id},
		Format:      "xlsx",
		OutDir:      out,
		Concurrency: 2,
	})
	if err != nil {
		t.Fatalf("ExportProjects() error: %v", err)
	}

	want := []string{
		filepath.Join(out, "Clinic_Fit-Out_Estimate.xlsx"),
		filepath.Join(out, "Office_Estimate.xlsx"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}

	f, err := excelize.OpenFile(paths[0])
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Estimate", "D2"); v != "Project: Clinic Fit-Out" {
		t.Errorf("D2 = %q, want project line", v)
	}
	if v, _ := f.GetCellValue("Estimate", "A10"); v != "Floors" {
		t.Errorf("A10 = %q, want Floors", v)
	}
}

func TestExportProjects_PDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")

	paths, err := ExportProjects(context.Background(), app, ExportOptions{
		ProjectIDs: []string{proj.Id},
		Format:     "pdf",
		OutDir:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ExportProjects() error: %v", err)
	}
	body, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Error("output is not a PDF document")
	}
}

func TestExportProjects_SameNameGetsDistinctFiles(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	a := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")
	b := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")

	paths, err := ExportProjects(context.Background(), app, ExportOptions{
		ProjectIDs: []string{a.Id, b.Id},
		Format:     "xlsx",
		OutDir:     t.TempDir(),
	})
	if err != nil {
		t.Fatalf("ExportProjects() error: %v", err)
	}
	if paths[0] == paths[1] {
		t.Fatalf("both projects written to %s", paths[0])
	}
	if !strings.Contains(paths[1], b.Id) {
		t.Errorf("second path %q should carry the project id", paths[1])
	}
}

func TestExportProjects_SlashInName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Suite 4/5")

	out := t.TempDir()
	paths, err := ExportProjects(context.Background(), app, ExportOptions{
		ProjectIDs: []string{proj.Id},
		Format:     "xlsx",
		OutDir:     out,
	})
	if err != nil {
		t.Fatalf("ExportProjects() error: %v", err)
	}
	if filepath.Dir(paths[0]) != out {
		t.Errorf("file %q escaped the output directory", paths[0])
	}
}

func TestExportProjects_SanitisedNamesDoNotCollide(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	slash := testhelpers.CreateTestProject(t, app, user.Id, "a/b")
	underscore := testhelpers.CreateTestProject(t, app, user.Id, "a_b")

	out := t.TempDir()
	paths, err := ExportProjects(context.Background(), app, ExportOptions{
		ProjectIDs: []string{slash.Id, underscore.Id},
		Format:     "xlsx",
		OutDir:     out,
	})
	if err != nil {
		t.Fatalf("ExportProjects() error: %v", err)
	}
	if paths[0] == paths[1] {
		t.Fatalf("both projects written to %s", paths[0])
	}
	if filepath.Base(paths[0]) != "a_b_Estimate.xlsx" {
		t.Errorf("first path = %q, want a_b_Estimate.xlsx", paths[0])
	}
	if !strings.Contains(paths[1], underscore.Id) {
		t.Errorf("second path %q should carry the project id", paths[1])
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing export %s: %v", p, err)
		}
	}
}

func TestExportProjects_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name string
		opts ExportOptions
	}{
		{"bad format", ExportOptions{ProjectIDs: []string{"x"}, Format: "csv", OutDir: t.TempDir()}},
		{"no projects", ExportOptions{Format: "pdf", OutDir: t.TempDir()}},
		{"unknown project", ExportOptions{ProjectIDs: []string{"nonexistent"}, Format: "pdf", OutDir: t.TempDir()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExportProjects(context.Background(), app, tt.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNewExportCommand(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	proj := testhelpers.CreateTestProject(t, app, user.Id, "Clinic")

	out := t.TempDir()
	cmd := NewExportCommand(app)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--project", proj.Id, "--format", "pdf", "--out", out})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	want := filepath.Join(out, "Clinic_Estimate.pdf")
	if strings.TrimSpace(stdout.String()) != want {
		t.Errorf("output = %q, want %q", stdout.String(), want)
	}
}

func TestNewExportCommand_RequiresProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	cmd := NewExportCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "pdf"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected missing --project to fail")
	}
}
