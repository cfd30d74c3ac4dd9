package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/templates"
)

// HandleMaterialList renders the catalog page.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildMaterialsData(app)
		if err != nil {
			log.Printf("material_list: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong")
		}
		return templates.Render(e.Response, "materials.html", data)
	}
}

// HandleMaterialCreate adds a catalog item and re-renders the table.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Nome é obrigatório")
		}

		price, err := strconv.ParseFloat(e.Request.FormValue("unit_price"), 64)
		if err != nil || price < 0 {
			return ErrorToast(e, http.StatusBadRequest, "Preço inválido")
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			log.Printf("material_list: could not find materials collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		record.Set("unit_price", price)

		if err := app.Save(record); err != nil {
			log.Printf("material_list: could not save material: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Material adicionado")
		return renderMaterialsTable(app, e)
	}
}

// HandleMaterialUpdate patches a catalog item. Existing draft lines keep
// their copied prices.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")

		record, err := app.FindRecordById("materials", materialID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Material not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if raw, ok := e.Request.Form["name"]; ok && len(raw) > 0 {
			name := strings.TrimSpace(raw[0])
			if name == "" {
				return ErrorToast(e, http.StatusBadRequest, "Nome é obrigatório")
			}
			record.Set("name", name)
		}
		if _, ok := e.Request.Form["description"]; ok {
			record.Set("description", strings.TrimSpace(e.Request.FormValue("description")))
		}
		if raw, ok := e.Request.Form["unit_price"]; ok && len(raw) > 0 {
			price, err := strconv.ParseFloat(raw[0], 64)
			if err != nil || price < 0 {
				return ErrorToast(e, http.StatusBadRequest, "Preço inválido")
			}
			record.Set("unit_price", price)
		}

		if err := app.Save(record); err != nil {
			log.Printf("material_list: could not save material %s: %v", materialID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Material atualizado")
		return renderMaterialsTable(app, e)
	}
}

// HandleMaterialDelete removes a catalog item. Lines that copied it stay
// unchanged on their drafts.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")

		record, err := app.FindRecordById("materials", materialID)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Material not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("material_list: could not delete material %s: %v", materialID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Material removido")
		return renderMaterialsTable(app, e)
	}
}

func buildMaterialsData(app *pocketbase.PocketBase) (map[string]any, error) {
	records, err := app.FindRecordsByFilter("materials", "id != ''", "name", 0, 0)
	if err != nil {
		return nil, err
	}

	type materialRow struct {
		ID          string
		Name        string
		Description string
		UnitPrice   float64
	}
	var rows []materialRow
	for _, rec := range records {
		rows = append(rows, materialRow{
			ID:          rec.Id,
			Name:        rec.GetString("name"),
			Description: rec.GetString("description"),
			UnitPrice:   rec.GetFloat("unit_price"),
		})
	}

	return map[string]any{
		"Title":     "Catálogo",
		"Materials": rows,
	}, nil
}

func renderMaterialsTable(app *pocketbase.PocketBase, e *core.RequestEvent) error {
	data, err := buildMaterialsData(app)
	if err != nil {
		log.Printf("material_list: rebuild table: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
	return templates.RenderBlock(e.Response, "materials.html", "materials_table", data)
}
