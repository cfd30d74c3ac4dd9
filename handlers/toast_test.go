package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orcamentos/testhelpers"
)

func TestSetToast_SetsHXTrigger(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	SetToast(e, "success", "Saved")

	trigger := rec.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("expected HX-Trigger header")
	}

	var payload map[string]map[string]string
	if err := json.Unmarshal([]byte(trigger), &payload); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if payload["showToast"]["message"] != "Saved" {
		t.Errorf("expected message Saved, got %q", payload["showToast"]["message"])
	}
	if payload["showToast"]["level"] != "success" {
		t.Errorf("expected level success, got %q", payload["showToast"]["level"])
	}
}

func TestSetToast_MergesExistingTrigger(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	rec.Header().Set("HX-Trigger", `{"otherEvent":{"x":"1"}}`)
	SetToast(e, "info", "Hello")

	var payload map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &payload); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := payload["otherEvent"]; !ok {
		t.Error("expected existing event to be preserved")
	}
	if _, ok := payload["showToast"]; !ok {
		t.Error("expected toast event to be merged in")
	}
}

func TestErrorToast_SetsReswapNone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := ErrorToast(e, http.StatusBadRequest, "bad input"); err != nil {
		t.Fatalf("ErrorToast returned error: %v", err)
	}

	if got := rec.Header().Get("HX-Reswap"); got != "none" {
		t.Errorf("expected HX-Reswap none, got %q", got)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
