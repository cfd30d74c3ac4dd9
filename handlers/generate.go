package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

// HandleProposalGenerate renders the quote as a branded PDF, appends a row
// to the history log and returns the file as a download.
// Route: POST /quotes/{id}/generate
func HandleProposalGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Quote not found")
		}

		clientName := quote.GetString("client_name")
		if clientName == "" {
			return ErrorToast(e, http.StatusBadRequest, "Informe o nome do cliente antes de gerar a proposta")
		}

		data, err := services.BuildProposalData(app, quoteID)
		if err != nil {
			log.Printf("generate: build proposal data: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		pdfBytes, err := services.GenerateProposalPDF(data)
		if err != nil {
			log.Printf("generate: render pdf: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao gerar o PDF. Tente novamente.")
		}

		// the log must gain exactly one row per generated proposal, so a
		// failed append aborts the download instead of silently skipping it
		if err := appendHistory(app, quote, data.Totals.FinalTotal); err != nil {
			log.Printf("generate: append history: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Falha ao registrar no histórico. Tente novamente.")
		}

		quote.Set("status", "generated")
		if err := app.Save(quote); err != nil {
			log.Printf("generate: could not mark quote %s as generated: %v", quoteID, err)
		}

		filename := fmt.Sprintf("Proposta_%s.pdf", sanitizeFilename(clientName))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// appendHistory writes one immutable row per generated proposal.
func appendHistory(app *pocketbase.PocketBase, quote *core.Record, finalTotal float64) error {
	col, err := app.FindCollectionByNameOrId("history")
	if err != nil {
		return fmt.Errorf("history collection not found: %w", err)
	}

	record := core.NewRecord(col)
	record.Set("date", time.Now().Format("02/01/2006"))
	record.Set("client_name", quote.GetString("client_name"))
	record.Set("total", finalTotal)

	if contact := quote.GetString("contact_number"); contact != "" {
		record.Set("contact_link", services.BuildWhatsAppLink(
			contact, quote.GetString("client_name"), finalTotal))
	}

	return app.Save(record)
}
