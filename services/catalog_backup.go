package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CatalogRow is one material as carried by backup files.
type CatalogRow struct {
	Name        string
	Description string
	UnitPrice   float64
}

// ValidationError represents a single field-level error on one row of
// an uploaded backup file.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogValidation is returned after parsing and validating an
// uploaded catalog backup.
type CatalogValidation struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ValidationError `json:"errors"`
	Rows      []CatalogRow      `json:"-"`
	FileName  string            `json:"-"`
}

// Accepted column headers, normalized to lower case. The Portuguese
// aliases keep backups written by older builds loadable.
var catalogHeaderAliases = map[string]string{
	"name":        "name",
	"item":        "name",
	"description": "description",
	"descricao":   "description",
	"descrição":   "description",
	"unit price":  "unit_price",
	"unit_price":  "unit_price",
	"price":       "unit_price",
	"preco":       "unit_price",
	"preço":       "unit_price",
}

// GenerateCatalogExcel renders the full materials table as an .xlsx
// backup and returns the file contents.
func GenerateCatalogExcel(rows []CatalogRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Materials"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{40, 50, 16}
	for i, col := range []string{"A", "B", "C"} {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range []string{"Name", "Description", "Unit Price"} {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A1", "C1", headerStyle)

	for i, r := range rows {
		rowStr := strconv.Itoa(i + 2)
		f.SetCellValue(sheetName, "A"+rowStr, r.Name)
		f.SetCellValue(sheetName, "B"+rowStr, r.Description)
		f.SetCellValue(sheetName, "C"+rowStr, r.UnitPrice)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateCatalogCSV renders the full materials table as a CSV backup.
func GenerateCatalogCSV(rows []CatalogRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"name", "description", "unit_price"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Name, r.Description, strconv.FormatFloat(r.UnitPrice, 'f', 2, 64)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateCatalogFile parses and validates an uploaded catalog backup.
// CSV and xlsx files are accepted. A file lacking the description
// column is still valid: descriptions default to empty.
func ValidateCatalogFile(file io.Reader, fileName string) (*CatalogValidation, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	if strings.HasSuffix(lowerName, ".csv") {
		headers, dataRows, err = parseBackupCSV(file)
	} else if strings.HasSuffix(lowerName, ".xlsx") {
		headers, dataRows, err = parseBackupExcel(file)
	} else {
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, unknown := mapCatalogHeaders(headers)
	if !contains(columnKeys, "name") || !contains(columnKeys, "unit_price") {
		return nil, fmt.Errorf("file is missing required columns (name, unit_price); unrecognized columns: %s",
			strings.Join(unknown, ", "))
	}

	result := &CatalogValidation{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		var parsed CatalogRow
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[colIdx])
			switch key {
			case "name":
				parsed.Name = value
			case "description":
				parsed.Description = value
			case "unit_price":
				if value == "" {
					parsed.UnitPrice = 0
					continue
				}
				price, err := parsePrice(value)
				if err != nil {
					rowErrors = append(rowErrors, ValidationError{
						Row:     rowNum,
						Field:   "Unit Price",
						Message: fmt.Sprintf("%q is not a valid price", value),
					})
					continue
				}
				if price < 0 {
					rowErrors = append(rowErrors, ValidationError{
						Row:     rowNum,
						Field:   "Unit Price",
						Message: "Unit price cannot be negative",
					})
					continue
				}
				parsed.UnitPrice = price
			}
		}

		if parsed.Name == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   "Name",
				Message: "Name is required",
			})
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}
		result.Rows = append(result.Rows, parsed)
	}

	result.ValidRows = len(result.Rows)
	result.ErrorRows = result.TotalRows - result.ValidRows
	return result, nil
}

// parseBackupCSV reads a CSV backup and returns headers + data rows.
func parseBackupCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 1 {
		return nil, nil, fmt.Errorf("file must contain a header row")
	}
	return allRows[0], allRows[1:], nil
}

// parseBackupExcel reads an xlsx backup's first sheet.
func parseBackupExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("file must contain a header row")
	}
	return rows[0], rows[1:], nil
}

// mapCatalogHeaders maps uploaded column headers to catalog field keys.
// Returns one key per column ("" for unrecognized) plus the list of
// unrecognized header names.
func mapCatalogHeaders(headers []string) ([]string, []string) {
	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)

		if key, ok := catalogHeaderAliases[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// parsePrice accepts both "1234.56" and the Brazilian "1.234,56".
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
