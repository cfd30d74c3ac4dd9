package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBlockCreate appends an empty service block to a quote and reloads
// the editor.
func HandleBlockCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("quotes", quoteID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		col, err := app.FindCollectionByNameOrId("service_blocks")
		if err != nil {
			log.Printf("block_edit: could not find service_blocks collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		existing, err := app.FindRecordsByFilter(
			"service_blocks", "quote = {:quote}", "", 0, 0,
			map[string]any{"quote": quoteID},
		)
		if err != nil {
			log.Printf("block_edit: could not count blocks: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("quote", quoteID)
		record.Set("sort_order", len(existing)+1)
		record.Set("title", "Novo serviço")

		if err := app.Save(record); err != nil {
			log.Printf("block_edit: could not save block: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		redirectURL := "/quotes/" + quoteID
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}

// HandleBlockUpdate patches block fields from the editor form.
func HandleBlockUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("id")

		record, err := app.FindRecordById("service_blocks", blockID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Service block not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		for _, field := range []string{"title", "damage_description", "technical_description"} {
			if _, ok := e.Request.Form[field]; ok {
				record.Set(field, strings.TrimSpace(e.Request.FormValue(field)))
			}
		}

		if raw, ok := e.Request.Form["labor_cost"]; ok && len(raw) > 0 {
			cost, err := strconv.ParseFloat(raw[0], 64)
			if err != nil || cost < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Invalid labor cost")
			}
			record.Set("labor_cost", cost)
		}

		if raw, ok := e.Request.Form["sort_order"]; ok && len(raw) > 0 {
			order, err := strconv.Atoi(raw[0])
			if err != nil {
				return ErrorToast(e, http.StatusBadRequest, "Invalid sort order")
			}
			record.Set("sort_order", order)
		}

		if err := app.Save(record); err != nil {
			log.Printf("block_edit: could not save block %s: %v", blockID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return renderTotalsPanel(app, e, record.GetString("quote"))
	}
}

// HandleBlockDelete removes a block and its material lines (cascade).
func HandleBlockDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("id")

		record, err := app.FindRecordById("service_blocks", blockID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Service block not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("block_edit: could not delete block %s: %v", blockID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Serviço removido")
		return e.String(http.StatusOK, "")
	}
}
