package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"orcamentos/testhelpers"
)

func TestHandleMaterialCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialCreate(app)

	form := url.Values{}
	form.Set("name", "Corda Semi-Estática 11mm")
	form.Set("description", "Rolo 100m")
	form.Set("unit_price", "890.50")

	req := httptest.NewRequest(http.MethodPost, "/materials",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	records, err := app.FindRecordsByFilter("materials", "name = {:name}", "", 1, 0,
		map[string]any{"name": "Corda Semi-Estática 11mm"})
	if err != nil || len(records) == 0 {
		t.Fatal("expected material to be created")
	}
	if got := records[0].GetFloat("unit_price"); got != 890.50 {
		t.Errorf("expected unit price 890.50, got %v", got)
	}
}

func TestHandleMaterialCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialCreate(app)

	form := url.Values{}
	form.Set("unit_price", "100")

	req := httptest.NewRequest(http.MethodPost, "/materials",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleMaterialUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	material := testhelpers.CreateTestMaterial(t, app, "Selante", 950)
	handler := HandleMaterialUpdate(app)

	form := url.Values{}
	form.Set("unit_price", "1050")

	req := httptest.NewRequest(http.MethodPatch, "/materials/"+material.Id,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", material.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	updated, err := app.FindRecordById("materials", material.Id)
	if err != nil {
		t.Fatalf("failed to reload material: %v", err)
	}
	if got := updated.GetFloat("unit_price"); got != 1050 {
		t.Errorf("expected updated price 1050, got %v", got)
	}
}

func TestHandleMaterialDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	material := testhelpers.CreateTestMaterial(t, app, "Selante", 950)
	handler := HandleMaterialDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/materials/"+material.Id, nil)
	req.SetPathValue("id", material.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if _, err := app.FindRecordById("materials", material.Id); err == nil {
		t.Error("expected material to be deleted")
	}
}
