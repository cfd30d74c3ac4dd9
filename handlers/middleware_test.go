package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetActiveQuote_FromContext(t *testing.T) {
	expected := &ActiveQuote{ID: "quote123", ClientName: "Cliente Ativo"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ActiveQuoteKey, expected)
	req = req.WithContext(ctx)

	got := GetActiveQuote(req)
	if got == nil {
		t.Fatal("expected active quote, got nil")
	}
	if got.ID != expected.ID {
		t.Errorf("expected ID %q, got %q", expected.ID, got.ID)
	}
	if got.ClientName != expected.ClientName {
		t.Errorf("expected client %q, got %q", expected.ClientName, got.ClientName)
	}
}

func TestGetActiveQuote_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetActiveQuote(req); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
