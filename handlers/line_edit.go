package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleLineCreate adds a material line to a service block. When material_id
// points at a catalog item its name and price are copied onto the line, so
// later catalog edits never change an existing draft.
func HandleLineCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("id")

		block, err := app.FindRecordById("service_blocks", blockID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Service block not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("material_name"))
		unitPrice := 0.0

		if materialID := e.Request.FormValue("material_id"); materialID != "" {
			material, err := app.FindRecordById("materials", materialID)
			if err != nil {
				return ErrorToast(e, http.StatusNotFound, "Material not found")
			}
			name = material.GetString("name")
			unitPrice = material.GetFloat("unit_price")
		}

		// an explicit unit value wins over the catalog snapshot
		if raw := e.Request.FormValue("unit_price"); raw != "" {
			unitPrice, err = strconv.ParseFloat(raw, 64)
			if err != nil || unitPrice < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Invalid unit price")
			}
		}

		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Selecione um item do catálogo ou informe um nome")
		}

		quantity := 1.0
		if raw := e.Request.FormValue("quantity"); raw != "" {
			quantity, err = strconv.ParseFloat(raw, 64)
			if err != nil || quantity < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Invalid quantity")
			}
		}

		col, err := app.FindCollectionByNameOrId("material_lines")
		if err != nil {
			log.Printf("line_edit: could not find material_lines collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		existing, err := app.FindRecordsByFilter(
			"material_lines", "block = {:block}", "", 0, 0,
			map[string]any{"block": blockID},
		)
		if err != nil {
			log.Printf("line_edit: could not count lines: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("block", blockID)
		record.Set("sort_order", len(existing)+1)
		record.Set("material_name", name)
		record.Set("quantity", quantity)
		record.Set("unit_price", unitPrice)

		if err := app.Save(record); err != nil {
			log.Printf("line_edit: could not save line: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("HX-Refresh", "true")
		return renderTotalsPanel(app, e, block.GetString("quote"))
	}
}

// HandleLineUpdate patches quantity or price on an existing line.
func HandleLineUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lineID := e.Request.PathValue("id")

		record, err := app.FindRecordById("material_lines", lineID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Line not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if raw, ok := e.Request.Form["quantity"]; ok && len(raw) > 0 {
			qty, err := strconv.ParseFloat(raw[0], 64)
			if err != nil || qty < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Invalid quantity")
			}
			record.Set("quantity", qty)
		}

		if raw, ok := e.Request.Form["unit_price"]; ok && len(raw) > 0 {
			price, err := strconv.ParseFloat(raw[0], 64)
			if err != nil || price < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Invalid unit price")
			}
			record.Set("unit_price", price)
		}

		if err := app.Save(record); err != nil {
			log.Printf("line_edit: could not save line %s: %v", lineID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return renderLineTotals(app, e, record)
	}
}

// HandleLineDelete removes a line from its block.
func HandleLineDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lineID := e.Request.PathValue("id")

		record, err := app.FindRecordById("material_lines", lineID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Line not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("line_edit: could not delete line %s: %v", lineID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("HX-Refresh", "true")
		return renderLineTotals(app, e, record)
	}
}

func renderLineTotals(app *pocketbase.PocketBase, e *core.RequestEvent, line *core.Record) error {
	block, err := app.FindRecordById("service_blocks", line.GetString("block"))
	if err != nil {
		log.Printf("line_edit: could not load parent block: %v", err)
		return e.NoContent(http.StatusNoContent)
	}
	return renderTotalsPanel(app, e, block.GetString("quote"))
}
