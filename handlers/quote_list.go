package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/templates"
)

type quoteListItem struct {
	ID          string
	ClientName  string
	Status      string
	StatusLabel string
	Created     string
}

var statusLabels = map[string]string{
	"draft":     "Rascunho",
	"generated": "Gerado",
}

// HandleQuoteList renders the home page with all quotes, newest first.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("quotes", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("quote_list: could not load quotes: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong")
		}

		var items []quoteListItem
		for _, rec := range records {
			status := rec.GetString("status")
			items = append(items, quoteListItem{
				ID:          rec.Id,
				ClientName:  rec.GetString("client_name"),
				Status:      status,
				StatusLabel: statusLabels[status],
				Created:     rec.GetDateTime("created").Time().Format("02/01/2006"),
			})
		}

		return templates.Render(e.Response, "index.html", map[string]any{
			"Title":  "Orçamentos",
			"Quotes": items,
		})
	}
}
