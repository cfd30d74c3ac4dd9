package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/templates"
)

type historyEntry struct {
	Date        string
	ClientName  string
	Total       float64
	ContactLink string
}

// HandleHistoryList renders the proposal log, newest first, with the total
// sold figure across all entries.
func HandleHistoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("history", "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("history_list: could not load history: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong")
		}

		var entries []historyEntry
		var totalSold float64
		for _, rec := range records {
			total := rec.GetFloat("total")
			totalSold += total
			entries = append(entries, historyEntry{
				Date:        rec.GetString("date"),
				ClientName:  rec.GetString("client_name"),
				Total:       total,
				ContactLink: rec.GetString("contact_link"),
			})
		}

		return templates.Render(e.Response, "history.html", map[string]any{
			"Title":     "Histórico",
			"Entries":   entries,
			"TotalSold": totalSold,
		})
	}
}
