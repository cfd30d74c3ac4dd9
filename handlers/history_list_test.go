package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orcamentos/testhelpers"
)

func TestHandleHistoryList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestHistoryEntry(t, app, "01/08/2026", "Condomínio Solar", 2400)
	testhelpers.CreateTestHistoryEntry(t, app, "15/08/2026", "Acme Corp", 1600)

	handler := HandleHistoryList(app)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Condomínio Solar", "Acme Corp", "Total vendido")
	// 2400 + 1600
	testhelpers.AssertHTMLContains(t, body, "R$ 4.000,00")
}

func TestHandleHistoryList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleHistoryList(app)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Nenhuma proposta gerada ainda.")
}
