package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
)

// HandleQuoteCreate starts a new draft and redirects to its editor.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quote_create: could not find quotes collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("status", "draft")
		record.Set("commercial_terms", collections.DefaultCommercialTerms)

		if err := app.Save(record); err != nil {
			log.Printf("quote_create: could not save quote: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		setActiveQuoteCookie(e, record.Id)

		redirectURL := "/quotes/" + record.Id
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}
