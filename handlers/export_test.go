package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"costestimator/testhelpers"
)

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Clinic_Estimate.xlsx", "attachment; filename*=utf-8''Clinic_Estimate.xlsx"},
		{"Café Fit Out.pdf", "attachment; filename*=utf-8''Caf%C3%A9%20Fit%20Out.pdf"},
	}
	for _, tt := range tests {
		if got := contentDisposition(tt.name); got != tt.want {
			t.Errorf("contentDisposition(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHandleExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user, proj := seedEstimateProject(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimator/projects/"+proj.Id+"/export/excel", nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	runHandler(t, HandleExportExcel(app), newAuthedRequestEvent(app, req, rec, user))

	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("Content-Type = %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename*=utf-8''") || !strings.HasSuffix(cd, ".xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a workbook: %v", err)
	}
	defer f.Close()
	if name := f.GetSheetName(0); name != "Estimate" {
		t.Errorf("sheet = %q, want Estimate", name)
	}
}

func TestHandleExportExcel_CustomFilename(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user, proj := seedEstimateProject(t, app)

	req := jsonRequest(t, http.MethodPost, "/api/estimator/projects/"+proj.Id+"/export/excel", map[string]any{
		"custom_filename": "Bid Set",
		"colors":          map[string]string{"header_bg": "#112233"},
	})
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	runHandler(t, HandleExportExcel(app), newAuthedRequestEvent(app, req, rec, user))

	assertStatus(t, rec, http.StatusOK)
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Bid%20Set") {
		t.Errorf("Content-Disposition = %q, want custom filename", cd)
	}
}

func TestHandleExportExcel_InvalidConfig(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user, proj := seedEstimateProject(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimator/projects/"+proj.Id+"/export/excel", strings.NewReader("{not json"))
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	runHandler(t, HandleExportExcel(app), newAuthedRequestEvent(app, req, rec, user))

	assertStatus(t, rec, http.StatusBadRequest)
}

func TestHandleExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user, proj := seedEstimateProject(t, app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimator/projects/"+proj.Id+"/export/pdf", nil)
	req.SetPathValue("id", proj.Id)
	rec := httptest.NewRecorder()
	runHandler(t, HandleExportPDF(app), newAuthedRequestEvent(app, req, rec, user))

	assertStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != contentTypePDF {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("response is not a PDF document")
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasSuffix(cd, ".pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleExportPDF_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/estimator/projects/nonexistent/export/pdf", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	runHandler(t, HandleExportPDF(app), newAuthedRequestEvent(app, req, rec, user))

	assertStatus(t, rec, http.StatusNotFound)
}
