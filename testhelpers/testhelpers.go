// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMaterial creates a catalog material record and returns it.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, name string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("description", "Test material")
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestQuote creates a draft quote record and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, clientName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("client_name", clientName)
	record.Set("client_tax_id", "12.345.678/0001-90")
	record.Set("status", "draft")
	record.Set("commercial_terms", collections.DefaultCommercialTerms)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// CreateTestBlock creates a service block linked to a quote.
func CreateTestBlock(t *testing.T, app *pocketbase.PocketBase, quoteID, title string, laborCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("service_blocks")
	if err != nil {
		t.Fatalf("failed to find service_blocks collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", 1)
	record.Set("title", title)
	record.Set("technical_description", "Aplicação de selante fibrado no perímetro.")
	record.Set("labor_cost", laborCost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test block: %v", err)
	}

	return record
}

// CreateTestLine creates a material line under a service block.
func CreateTestLine(t *testing.T, app *pocketbase.PocketBase, blockID, materialName string, quantity, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_lines")
	if err != nil {
		t.Fatalf("failed to find material_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("block", blockID)
	record.Set("sort_order", 1)
	record.Set("material_name", materialName)
	record.Set("quantity", quantity)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line: %v", err)
	}

	return record
}

// CreateTestHistoryEntry appends one row to the history log.
func CreateTestHistoryEntry(t *testing.T, app *pocketbase.PocketBase, date, clientName string, total float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("history")
	if err != nil {
		t.Fatalf("failed to find history collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("date", date)
	record.Set("client_name", clientName)
	record.Set("total", total)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test history entry: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
