package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/services"
	"orcamentos/templates"
)

// importReport wraps a validation result with the serialized rows the
// commit form posts back.
type importReport struct {
	services.CatalogValidation
	RowsJSON string
}

// HandleCatalogImportPage renders the upload form.
// Route: GET /materials/import
func HandleCatalogImportPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return templates.Render(e.Response, "import.html", map[string]any{
			"Title": "Importar catálogo",
		})
	}
}

// HandleCatalogImportValidate receives the backup file, validates it, and
// returns the per-row report as an HTMX partial.
// Route: POST /materials/import/validate
func HandleCatalogImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Selecione um arquivo para enviar")
		}
		defer file.Close()

		result, err := services.ValidateCatalogFile(file, header.Filename)
		if err != nil {
			log.Printf("catalog_import: validate: %v", err)
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		report := importReport{CatalogValidation: *result}
		if result.ValidRows > 0 {
			b, err := json.Marshal(result.Rows)
			if err != nil {
				log.Printf("catalog_import: marshal rows: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			report.RowsJSON = string(b)
		}

		return templates.RenderBlock(e.Response, "import.html", "import_report", map[string]any{
			"Report": report,
		})
	}
}

// HandleCatalogImportCommit replaces the whole catalog with the validated
// rows from the previous step.
// Route: POST /materials/import/commit
func HandleCatalogImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		var rows []services.CatalogRow
		if err := json.Unmarshal([]byte(e.Request.FormValue("rows")), &rows); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid import data, validate the file again")
		}
		if len(rows) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "Nothing to import")
		}

		// The rows come back from the client, so re-validate before touching
		// the store.
		for i, row := range rows {
			if strings.TrimSpace(row.Name) == "" {
				return ErrorToast(e, http.StatusBadRequest,
					fmt.Sprintf("Invalid import data at row %d: name is required", i+1))
			}
			if row.UnitPrice < 0 {
				return ErrorToast(e, http.StatusBadRequest,
					fmt.Sprintf("Invalid import data at row %d: price must not be negative", i+1))
			}
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("catalog_import: materials collection not found: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		// Full replace: the backup is the source of truth. The delete+insert
		// pair runs in one transaction so a failure leaves the catalog
		// untouched. Draft lines are unaffected either way because they copy
		// name and price at add time.
		err = app.RunInTransaction(func(txApp core.App) error {
			existing, err := txApp.FindAllRecords("materials")
			if err != nil {
				return fmt.Errorf("list materials: %w", err)
			}
			for _, rec := range existing {
				if err := txApp.Delete(rec); err != nil {
					return fmt.Errorf("delete material %s: %w", rec.Id, err)
				}
			}

			for _, row := range rows {
				record := core.NewRecord(col)
				record.Set("name", strings.TrimSpace(row.Name))
				record.Set("description", row.Description)
				record.Set("unit_price", row.UnitPrice)
				if err := txApp.Save(record); err != nil {
					return fmt.Errorf("save material %q: %w", row.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("catalog_import: replace failed, catalog left unchanged: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", fmt.Sprintf("Catálogo substituído: %d itens importados", len(rows)))
		e.Response.Header().Set("HX-Redirect", "/materials")
		return e.String(http.StatusOK, "")
	}
}
