package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type materialDef struct {
	name        string
	description string
	unitPrice   float64
}

// Standard catalog shipped with a fresh install.
var seedMaterials = []materialDef{
	{"Impermeabilização de Janelas (Kit)", "Selante fibrado + Mão de obra", 3500.00},
	{"Mão de Obra (Diária Equipe)", "02 Alpinistas + Equipamentos", 1200.00},
	{"Selante Fibrado (Balde)", "Balde 10kg Industrial", 950.00},
	{"Taxa de Mobilização", "Transporte e Montagem", 500.00},
}

// Seed populates the materials catalog with the standard price list.
// It is safe to call on every startup because it returns early when
// any material records already exist.
func Seed(app *pocketbase.PocketBase) error {
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}
	existing, err := app.FindAllRecords(materialsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query materials: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: materials collection is empty – inserting standard catalog …")

	for _, d := range seedMaterials {
		r := core.NewRecord(materialsCol)
		r.Set("name", d.name)
		r.Set("description", d.description)
		r.Set("unit_price", d.unitPrice)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save material %q: %w", d.name, err)
		}
	}
	return nil
}
