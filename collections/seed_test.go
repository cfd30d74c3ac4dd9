package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
)

func TestSeed_InsertsStandardCatalog(t *testing.T) {
	app := newSetupApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	records, err := app.FindAllRecords("materials")
	if err != nil {
		t.Fatalf("failed to list materials: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected 4 seeded materials, got %d", len(records))
	}

	byName := make(map[string]float64)
	for _, r := range records {
		byName[r.GetString("name")] = r.GetFloat("unit_price")
	}

	expected := map[string]float64{
		"Impermeabilização de Janelas (Kit)": 3500,
		"Mão de Obra (Diária Equipe)":        1200,
		"Selante Fibrado (Balde)":            950,
		"Taxa de Mobilização":                500,
	}

	for name, price := range expected {
		got, ok := byName[name]
		if !ok {
			t.Errorf("expected seeded material %q", name)
			continue
		}
		if got != price {
			t.Errorf("material %q: expected unit_price %.2f, got %.2f", name, price, got)
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := newSetupApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	records, err := app.FindAllRecords("materials")
	if err != nil {
		t.Fatalf("failed to list materials: %v", err)
	}

	if len(records) != 4 {
		t.Errorf("expected seed to be idempotent with 4 materials, got %d", len(records))
	}
}

func TestSeed_SkipsNonEmptyCatalog(t *testing.T) {
	app := newSetupApp(t)

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("materials collection not found: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", "Material Existente")
	record.Set("unit_price", 100.0)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save existing material: %v", err)
	}

	if err := collections.Seed(app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	records, err := app.FindAllRecords("materials")
	if err != nil {
		t.Fatalf("failed to list materials: %v", err)
	}

	if len(records) != 1 {
		t.Errorf("expected seed to skip a non-empty catalog, got %d materials", len(records))
	}
}
