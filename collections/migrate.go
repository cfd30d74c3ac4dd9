package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Default commercial terms applied to quotes created by older builds
// that had no terms field.
const DefaultCommercialTerms = "Pagamento: 50% entrada / 50% entrega.\nValidade: 15 dias."

// MigrateCatalogColumns brings a store created by an older build up to
// the current schema: the materials collection gains the description
// column and the quotes collection gains the override pair. Records
// keep their values; missing columns come up empty rather than
// breaking the loaders.
func MigrateCatalogColumns(app *pocketbase.PocketBase) error {
	materials, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("migrate: could not find materials collection: %w", err)
	}
	if added := addMissingField(materials, &core.TextField{Name: "description"}); added {
		if err := app.Save(materials); err != nil {
			return fmt.Errorf("migrate: could not add materials.description: %w", err)
		}
		log.Println("migrate: added description column to materials")
	}

	quotes, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("migrate: could not find quotes collection: %w", err)
	}
	changed := addMissingField(quotes, &core.NumberField{Name: "final_total_override"})
	if addMissingField(quotes, &core.BoolField{Name: "has_override"}) {
		changed = true
	}
	if changed {
		if err := app.Save(quotes); err != nil {
			return fmt.Errorf("migrate: could not add quote override columns: %w", err)
		}
		log.Println("migrate: added override columns to quotes")
	}

	return nil
}

// MigrateDefaultCommercialTerms backfills the standard terms text on
// draft quotes that have none, so generation never emits an empty
// commercial section by accident.
func MigrateDefaultCommercialTerms(app *pocketbase.PocketBase) error {
	quotes, err := app.FindRecordsByFilter(
		"quotes", "status = 'draft' && commercial_terms = ''", "", 0, 0, nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query draft quotes: %w", err)
	}

	for _, q := range quotes {
		q.Set("commercial_terms", DefaultCommercialTerms)
		if err := app.Save(q); err != nil {
			return fmt.Errorf("migrate: could not backfill terms on quote %s: %w", q.Id, err)
		}
	}
	if len(quotes) > 0 {
		log.Printf("migrate: backfilled commercial terms on %d draft quote(s)", len(quotes))
	}
	return nil
}

// addMissingField adds the field when the collection does not already
// carry a field with that name. Reports whether the collection changed.
func addMissingField(col *core.Collection, field core.Field) bool {
	if col.Fields.GetByName(field.GetName()) != nil {
		return false
	}
	col.Fields.Add(field)
	return true
}
