package services

import (
	"testing"

	"orcamentos/testhelpers"
)

func TestBuildProposalData_TiedSortOrderFollowsCreation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Cliente Teste")

	// both blocks share sort_order 1, so creation order breaks the tie
	testhelpers.CreateTestBlock(t, app, quote.Id, "Primeiro Serviço", 100)
	testhelpers.CreateTestBlock(t, app, quote.Id, "Segundo Serviço", 200)

	data, err := BuildProposalData(app, quote.Id)
	if err != nil {
		t.Fatalf("failed to build proposal data: %v", err)
	}

	if len(data.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(data.Blocks))
	}
	if got := data.Blocks[0].Title; got != "Primeiro Serviço" {
		t.Errorf("expected first created block first, got %q", got)
	}
	if got := data.Blocks[1].Title; got != "Segundo Serviço" {
		t.Errorf("expected second created block second, got %q", got)
	}
	if data.Blocks[0].Number != 1 || data.Blocks[1].Number != 2 {
		t.Errorf("expected sequential numbering, got %d and %d",
			data.Blocks[0].Number, data.Blocks[1].Number)
	}
}

func TestBuildProposalData_TotalsMatchDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quote := testhelpers.CreateTestQuote(t, app, "Acme Corp")
	block := testhelpers.CreateTestBlock(t, app, quote.Id, "Impermeabilização de Fachada", 500)
	testhelpers.CreateTestLine(t, app, block.Id, "Selante Fibrado (Balde)", 2, 950)

	data, err := BuildProposalData(app, quote.Id)
	if err != nil {
		t.Fatalf("failed to build proposal data: %v", err)
	}

	if got := data.Totals.Subtotal; got != 2400 {
		t.Errorf("expected subtotal 2400, got %v", got)
	}
	if got := data.Totals.FinalTotal; got != 2400 {
		t.Errorf("expected final total 2400, got %v", got)
	}
	if got := data.Blocks[0].Totals.MaterialsSubtotal; got != 1900 {
		t.Errorf("expected materials subtotal 1900, got %v", got)
	}
}
