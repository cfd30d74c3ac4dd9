package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

// View models consumed by the quote editor template.

type quoteView struct {
	ID              string
	ClientName      string
	ClientTaxID     string
	ContactNumber   string
	CommercialTerms string
	FooterNotes     string
	Status          string
	ContactLink     string
}

type photoView struct {
	Name      string
	URL       string
	DeleteURL string
}

type lineView struct {
	ID           string
	MaterialName string
	Quantity     float64
	UnitPrice    float64
	LineTotal    float64
}

type blockView struct {
	ID                   string
	Title                string
	DamageDescription    string
	TechnicalDescription string
	LaborCost            float64
	Photos               []photoView
	Lines                []lineView
	Totals               services.BlockTotals
}

type materialOption struct {
	ID        string
	Name      string
	UnitPrice float64
}

// buildQuoteEditorData loads a quote with its blocks and lines and computes
// the totals the editor and the totals panel render from.
func buildQuoteEditorData(app *pocketbase.PocketBase, quoteID string) (map[string]any, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return nil, fmt.Errorf("load quote %s: %w", quoteID, err)
	}

	blockRecords, err := app.FindRecordsByFilter(
		"service_blocks",
		"quote = {:quote}",
		"sort_order,created",
		0, 0,
		map[string]any{"quote": quote.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("load blocks: %w", err)
	}

	var blocks []blockView
	var totalBlocks []services.BlockForTotals

	for _, br := range blockRecords {
		lineRecords, err := app.FindRecordsByFilter(
			"material_lines",
			"block = {:block}",
			"sort_order,created",
			0, 0,
			map[string]any{"block": br.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("load lines for block %s: %w", br.Id, err)
		}

		var lines []lineView
		var totalLines []services.LineForTotals
		for _, lr := range lineRecords {
			qty := lr.GetFloat("quantity")
			price := lr.GetFloat("unit_price")
			lines = append(lines, lineView{
				ID:           lr.Id,
				MaterialName: lr.GetString("material_name"),
				Quantity:     qty,
				UnitPrice:    price,
				LineTotal:    services.CalcLineTotal(qty, price),
			})
			totalLines = append(totalLines, services.LineForTotals{
				Quantity:  qty,
				UnitPrice: price,
			})
		}

		forTotals := services.BlockForTotals{
			Lines:     totalLines,
			LaborCost: br.GetFloat("labor_cost"),
		}
		totalBlocks = append(totalBlocks, forTotals)

		blocks = append(blocks, blockView{
			ID:                   br.Id,
			Title:                br.GetString("title"),
			DamageDescription:    br.GetString("damage_description"),
			TechnicalDescription: br.GetString("technical_description"),
			LaborCost:            br.GetFloat("labor_cost"),
			Photos:               buildPhotoViews(br),
			Lines:                lines,
			Totals:               services.CalcBlockTotals(forTotals),
		})
	}

	totals := services.CalcQuoteTotals(
		totalBlocks,
		quote.GetFloat("adjustment_percent"),
		quote.GetFloat("final_total_override"),
		quote.GetBool("has_override"),
	)

	materials, err := app.FindRecordsByFilter("materials", "id != ''", "name", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	var options []materialOption
	for _, m := range materials {
		options = append(options, materialOption{
			ID:        m.Id,
			Name:      m.GetString("name"),
			UnitPrice: m.GetFloat("unit_price"),
		})
	}

	qv := quoteView{
		ID:              quote.Id,
		ClientName:      quote.GetString("client_name"),
		ClientTaxID:     quote.GetString("client_tax_id"),
		ContactNumber:   quote.GetString("contact_number"),
		CommercialTerms: quote.GetString("commercial_terms"),
		FooterNotes:     quote.GetString("footer_notes"),
		Status:          quote.GetString("status"),
	}
	if qv.Status == "generated" && qv.ContactNumber != "" {
		qv.ContactLink = services.BuildWhatsAppLink(qv.ContactNumber, qv.ClientName, totals.FinalTotal)
	}

	return map[string]any{
		"Title":     "Editar orçamento",
		"Quote":     qv,
		"Blocks":    blocks,
		"Materials": options,
		"Totals":    totals,
	}, nil
}

func buildPhotoViews(block *core.Record) []photoView {
	var photos []photoView
	for _, name := range block.GetStringSlice("photos") {
		photos = append(photos, photoView{
			Name: name,
			URL: fmt.Sprintf("/api/files/%s/%s/%s",
				block.Collection().Name, block.Id, name),
			DeleteURL: fmt.Sprintf("/blocks/%s/photos/%s", block.Id, name),
		})
	}
	return photos
}
