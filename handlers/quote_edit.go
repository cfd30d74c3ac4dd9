package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
	"orcamentos/templates"
)

// HandleQuoteView renders the editor for one quote.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		data, err := buildQuoteEditorData(app, quoteID)
		if err != nil {
			log.Printf("quote_edit: %v", err)
			return e.Redirect(http.StatusFound, "/")
		}

		setActiveQuoteCookie(e, quoteID)

		return templates.Render(e.Response, "quote_edit.html", data)
	}
}

// HandleQuoteUpdate patches quote fields from the editor forms. When the
// request targets the totals panel it re-renders just that fragment.
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, field := range []string{
			"client_name", "client_tax_id", "contact_number",
			"commercial_terms", "footer_notes",
		} {
			if _, ok := e.Request.Form[field]; ok {
				record.Set(field, strings.TrimSpace(e.Request.FormValue(field)))
			}
		}

		if raw, ok := e.Request.Form["adjustment_percent"]; ok && len(raw) > 0 {
			pct, err := strconv.ParseFloat(raw[0], 64)
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Invalid adjustment value")
			}
			record.Set("adjustment_percent", services.ClampAdjustment(pct))
		}

		// The override form carries a hidden marker so an unchecked checkbox
		// (absent from the form data) can be told apart from other forms.
		if _, ok := e.Request.Form["override_form"]; ok {
			record.Set("has_override", e.Request.FormValue("has_override") == "true")
		}
		if raw, ok := e.Request.Form["final_total_override"]; ok && len(raw) > 0 {
			val, err := strconv.ParseFloat(raw[0], 64)
			if err != nil || val < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Invalid total value")
			}
			record.Set("final_total_override", val)
		}

		if err := app.Save(record); err != nil {
			log.Printf("quote_edit: could not save quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return renderTotalsPanel(app, e, quoteID)
	}
}

// HandleQuoteDelete removes a quote and everything under it (cascade).
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		record, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_edit: could not delete quote %s: %v", quoteID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Orçamento excluído")
		return e.String(http.StatusOK, "")
	}
}

// renderTotalsPanel re-renders the totals fragment for HTMX swaps, or
// returns 200 with no body for forms that swap nothing.
func renderTotalsPanel(app *pocketbase.PocketBase, e *core.RequestEvent, quoteID string) error {
	if e.Request.Header.Get("HX-Target") != "totals-panel" {
		return e.NoContent(http.StatusNoContent)
	}

	data, err := buildQuoteEditorData(app, quoteID)
	if err != nil {
		log.Printf("quote_edit: rebuild totals: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return templates.RenderBlock(e.Response, "quote_edit.html", "totals_panel", data)
}
