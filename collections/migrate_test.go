package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
)

func TestMigrateCatalogColumns_AddsMissingFields(t *testing.T) {
	app := newSetupApp(t)

	// simulate an older schema without the description column
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("materials collection not found: %v", err)
	}
	col.Fields.RemoveByName("description")
	if err := app.Save(col); err != nil {
		t.Fatalf("failed to save stripped collection: %v", err)
	}

	if err := collections.MigrateCatalogColumns(app); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	col, err = app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("materials collection not found after migration: %v", err)
	}
	if col.Fields.GetByName("description") == nil {
		t.Error("expected migration to restore the description field")
	}
}

func TestMigrateCatalogColumns_Idempotent(t *testing.T) {
	app := newSetupApp(t)

	if err := collections.MigrateCatalogColumns(app); err != nil {
		t.Fatalf("first migration failed: %v", err)
	}
	if err := collections.MigrateCatalogColumns(app); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("quotes collection not found: %v", err)
	}
	for _, name := range []string{"final_total_override", "has_override"} {
		if col.Fields.GetByName(name) == nil {
			t.Errorf("expected quotes to have field %q after migration", name)
		}
	}
}

func TestMigrateDefaultCommercialTerms_BackfillsDrafts(t *testing.T) {
	app := newSetupApp(t)

	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("quotes collection not found: %v", err)
	}

	draft := core.NewRecord(quotesCol)
	draft.Set("client_name", "Cliente Sem Termos")
	draft.Set("status", "draft")
	if err := app.Save(draft); err != nil {
		t.Fatalf("failed to save draft: %v", err)
	}

	generated := core.NewRecord(quotesCol)
	generated.Set("client_name", "Cliente Fechado")
	generated.Set("status", "generated")
	if err := app.Save(generated); err != nil {
		t.Fatalf("failed to save generated quote: %v", err)
	}

	custom := core.NewRecord(quotesCol)
	custom.Set("client_name", "Cliente Com Termos")
	custom.Set("status", "draft")
	custom.Set("commercial_terms", "Pagamento à vista.")
	if err := app.Save(custom); err != nil {
		t.Fatalf("failed to save quote with custom terms: %v", err)
	}

	if err := collections.MigrateDefaultCommercialTerms(app); err != nil {
		t.Fatalf("terms migration failed: %v", err)
	}

	refreshed, err := app.FindRecordById("quotes", draft.Id)
	if err != nil {
		t.Fatalf("failed to reload draft: %v", err)
	}
	if got := refreshed.GetString("commercial_terms"); got != collections.DefaultCommercialTerms {
		t.Errorf("expected backfilled terms %q, got %q", collections.DefaultCommercialTerms, got)
	}

	refreshed, err = app.FindRecordById("quotes", generated.Id)
	if err != nil {
		t.Fatalf("failed to reload generated quote: %v", err)
	}
	if got := refreshed.GetString("commercial_terms"); got != "" {
		t.Errorf("expected generated quote untouched, got terms %q", got)
	}

	refreshed, err = app.FindRecordById("quotes", custom.Id)
	if err != nil {
		t.Fatalf("failed to reload quote with custom terms: %v", err)
	}
	if got := refreshed.GetString("commercial_terms"); got != "Pagamento à vista." {
		t.Errorf("expected custom terms preserved, got %q", got)
	}
}
