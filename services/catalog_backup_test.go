package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

var backupRows = []CatalogRow{
	{Name: "Window Waterproofing Kit", Description: "Fibered sealant + labor", UnitPrice: 3500},
	{Name: "Fibered Sealant (10kg Bucket)", Description: "Industrial bucket", UnitPrice: 950},
	{Name: "Mobilization Fee", Description: "", UnitPrice: 500},
}

func TestGenerateCatalogCSVRoundTrip(t *testing.T) {
	data, err := GenerateCatalogCSV(backupRows)
	if err != nil {
		t.Fatalf("GenerateCatalogCSV() error = %v", err)
	}

	result, err := ValidateCatalogFile(bytes.NewReader(data), "backup.csv")
	if err != nil {
		t.Fatalf("ValidateCatalogFile() error = %v", err)
	}
	if result.ErrorRows != 0 {
		t.Fatalf("round trip produced %d error rows: %+v", result.ErrorRows, result.Errors)
	}
	if len(result.Rows) != len(backupRows) {
		t.Fatalf("got %d rows, want %d", len(result.Rows), len(backupRows))
	}
	for i, r := range result.Rows {
		if r != backupRows[i] {
			t.Errorf("row %d = %+v, want %+v", i, r, backupRows[i])
		}
	}
}

func TestGenerateCatalogExcelRoundTrip(t *testing.T) {
	data, err := GenerateCatalogExcel(backupRows)
	if err != nil {
		t.Fatalf("GenerateCatalogExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated file is not a valid xlsx: %v", err)
	}
	defer f.Close()

	result, err := ValidateCatalogFile(bytes.NewReader(data), "backup.xlsx")
	if err != nil {
		t.Fatalf("ValidateCatalogFile() error = %v", err)
	}
	if result.ValidRows != len(backupRows) {
		t.Fatalf("got %d valid rows, want %d: %+v", result.ValidRows, len(backupRows), result.Errors)
	}
	for i, r := range result.Rows {
		if r != backupRows[i] {
			t.Errorf("row %d = %+v, want %+v", i, r, backupRows[i])
		}
	}
}

func TestValidateCatalogFileMissingDescriptionColumn(t *testing.T) {
	csvData := "name,unit_price\nSelante,950.00\nTaxa de Mobilização,500\n"

	result, err := ValidateCatalogFile(strings.NewReader(csvData), "old_backup.csv")
	if err != nil {
		t.Fatalf("ValidateCatalogFile() error = %v", err)
	}
	if result.ValidRows != 2 {
		t.Fatalf("got %d valid rows, want 2: %+v", result.ValidRows, result.Errors)
	}
	for _, r := range result.Rows {
		if r.Description != "" {
			t.Errorf("expected synthesized empty description, got %q", r.Description)
		}
	}
}

func TestValidateCatalogFilePortugueseHeaders(t *testing.T) {
	csvData := "Item,Descricao,Preco\nSelante Fibrado,Balde 10kg,\"1.234,56\"\n"

	result, err := ValidateCatalogFile(strings.NewReader(csvData), "materiais.csv")
	if err != nil {
		t.Fatalf("ValidateCatalogFile() error = %v", err)
	}
	if result.ValidRows != 1 {
		t.Fatalf("got %d valid rows, want 1: %+v", result.ValidRows, result.Errors)
	}
	if result.Rows[0].UnitPrice != 1234.56 {
		t.Errorf("UnitPrice = %v, want 1234.56", result.Rows[0].UnitPrice)
	}
}

func TestValidateCatalogFileRowErrors(t *testing.T) {
	csvData := "name,description,unit_price\n,missing name,100\nValid Item,,abc\nNegative,,-5\nGood One,,50\n"

	result, err := ValidateCatalogFile(strings.NewReader(csvData), "backup.csv")
	if err != nil {
		t.Fatalf("ValidateCatalogFile() error = %v", err)
	}
	if result.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", result.TotalRows)
	}
	if result.ValidRows != 1 {
		t.Errorf("ValidRows = %d, want 1", result.ValidRows)
	}
	if result.ErrorRows != 3 {
		t.Errorf("ErrorRows = %d, want 3", result.ErrorRows)
	}
	if len(result.Rows) != 1 || result.Rows[0].Name != "Good One" {
		t.Errorf("surviving rows = %+v, want only Good One", result.Rows)
	}
}

func TestValidateCatalogFileRejectsUnknownFormat(t *testing.T) {
	if _, err := ValidateCatalogFile(strings.NewReader("x"), "backup.pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidateCatalogFileRejectsMissingRequiredColumns(t *testing.T) {
	csvData := "foo,bar\n1,2\n"
	if _, err := ValidateCatalogFile(strings.NewReader(csvData), "backup.csv"); err == nil {
		t.Fatal("expected error when name/unit_price columns are absent")
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"950.00", 950, false},
		{"1.234,56", 1234.56, false},
		{"R$ 500", 500, false},
		{"2,5", 2.5, false},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePrice(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePrice(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePrice(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
