package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
)

// HandleCatalogExport downloads the full materials catalog as a backup file.
// Route: GET /materials/export?format=xlsx|csv
func HandleCatalogExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		format := e.Request.URL.Query().Get("format")
		if format == "" {
			format = "xlsx"
		}

		records, err := app.FindRecordsByFilter("materials", "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("catalog_export: query failed: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to load catalog")
		}

		var rows []services.CatalogRow
		for _, rec := range records {
			rows = append(rows, services.CatalogRow{
				Name:        rec.GetString("name"),
				Description: rec.GetString("description"),
				UnitPrice:   rec.GetFloat("unit_price"),
			})
		}

		stamp := time.Now().Format("2006-01-02")

		switch format {
		case "csv":
			data, err := services.GenerateCatalogCSV(rows)
			if err != nil {
				log.Printf("catalog_export: generate failed: %v", err)
				return e.String(http.StatusInternalServerError, "Failed to generate CSV file")
			}
			e.Response.Header().Set("Content-Type", "text/csv; charset=utf-8")
			e.Response.Header().Set("Content-Disposition",
				fmt.Sprintf(`attachment; filename="Catalogo_%s.csv"`, stamp))
			e.Response.Write(data)
			return nil
		case "xlsx":
			data, err := services.GenerateCatalogExcel(rows)
			if err != nil {
				log.Printf("catalog_export: generate failed: %v", err)
				return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
			}
			e.Response.Header().Set("Content-Type",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			e.Response.Header().Set("Content-Disposition",
				fmt.Sprintf(`attachment; filename="Catalogo_%s.xlsx"`, stamp))
			e.Response.Write(data)
			return nil
		default:
			return e.String(http.StatusBadRequest, "Unsupported format: "+format)
		}
	}
}

// sanitizeFilename strips characters that break Content-Disposition values.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_",
		"?", "_", `"`, "_", "<", "_", ">", "_", "|", "_",
	)
	cleaned := replacer.Replace(strings.TrimSpace(name))
	return strings.Join(strings.Fields(cleaned), "_")
}
