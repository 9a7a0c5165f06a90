package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newAuthedRequestEvent is newTestRequestEvent with user as the
// authenticated caller.
func newAuthedRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder, user *core.Record) *core.RequestEvent {
	e := newTestRequestEvent(app, req, rec)
	e.Auth = user
	return e
}

// jsonRequest builds a request with body encoded as JSON. A nil body sends
// no content.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeObject decodes a JSON object response.
func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

// runHandler invokes h and fails the test on a returned error.
func runHandler(t *testing.T, h func(*core.RequestEvent) error, e *core.RequestEvent) {
	t.Helper()
	if err := h(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d\nbody: %s", want, rec.Code, rec.Body.String())
	}
}
