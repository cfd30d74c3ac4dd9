package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
)

// Validity window printed on the client header.
const validityDays = 15

// ProposalPhoto is an image attached to a service block, decoded far
// enough to lay it out proportionally.
type ProposalPhoto struct {
	Bytes  []byte
	Format string // "png" or "jpeg"
	Width  int
	Height int
}

// ProposalLine is one material row of a block's table.
type ProposalLine struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	LineTotal float64
}

// ProposalBlock is one numbered service section of the document.
type ProposalBlock struct {
	Number               int
	Title                string
	DamageDescription    string
	TechnicalDescription string
	Photos               []ProposalPhoto
	Lines                []ProposalLine
	Totals               BlockTotals
}

// ProposalData holds everything the renderer needs for one proposal.
type ProposalData struct {
	ClientName    string
	ClientTaxID   string
	ContactNumber string
	IssueDate     string
	ValidUntil    string

	Blocks []ProposalBlock
	Totals QuoteTotals

	CommercialTerms string
	FooterNotes     string

	LogoPath      string
	WatermarkPath string
	CoverPages    []string
	ClosingPages  []string
}

// BuildProposalData fetches a quote with all its blocks and lines and
// assembles the renderer input. Branding assets are resolved
// best-effort: anything missing is simply left out.
func BuildProposalData(app *pocketbase.PocketBase, quoteID string) (*ProposalData, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return nil, fmt.Errorf("quote not found: %w", err)
	}

	blockRecords, err := app.FindRecordsByFilter(
		"service_blocks", "quote = {:quoteId}", "sort_order,created", 0, 0,
		map[string]any{"quoteId": quoteID},
	)
	if err != nil {
		blockRecords = nil
	}

	now := time.Now()
	data := &ProposalData{
		ClientName:      quote.GetString("client_name"),
		ClientTaxID:     quote.GetString("client_tax_id"),
		ContactNumber:   quote.GetString("contact_number"),
		IssueDate:       now.Format("02/01/2006"),
		ValidUntil:      now.AddDate(0, 0, validityDays).Format("02/01/2006"),
		CommercialTerms: quote.GetString("commercial_terms"),
		FooterNotes:     quote.GetString("footer_notes"),
	}

	var blocksForTotals []BlockForTotals
	for i, br := range blockRecords {
		block := ProposalBlock{
			Number:               i + 1,
			Title:                br.GetString("title"),
			DamageDescription:    br.GetString("damage_description"),
			TechnicalDescription: br.GetString("technical_description"),
		}

		lineRecords, err := app.FindRecordsByFilter(
			"material_lines", "block = {:blockId}", "sort_order,created", 0, 0,
			map[string]any{"blockId": br.Id},
		)
		if err != nil {
			lineRecords = nil
		}

		forTotals := BlockForTotals{LaborCost: br.GetFloat("labor_cost")}
		for _, lr := range lineRecords {
			qty := lr.GetFloat("quantity")
			price := lr.GetFloat("unit_price")
			block.Lines = append(block.Lines, ProposalLine{
				Name:      lr.GetString("material_name"),
				Quantity:  qty,
				UnitPrice: price,
				LineTotal: CalcLineTotal(qty, price),
			})
			forTotals.Lines = append(forTotals.Lines, LineForTotals{Quantity: qty, UnitPrice: price})
		}

		block.Totals = CalcBlockTotals(forTotals)
		blocksForTotals = append(blocksForTotals, forTotals)

		block.Photos = loadBlockPhotos(app, br.BaseFilesPath(), br.GetStringSlice("photos"))
		data.Blocks = append(data.Blocks, block)
	}

	data.Totals = CalcQuoteTotals(
		blocksForTotals,
		quote.GetFloat("adjustment_percent"),
		quote.GetFloat("final_total_override"),
		quote.GetBool("has_override"),
	)

	resolveBranding(data)
	return data, nil
}

// loadBlockPhotos reads the stored photo files of one block. A photo
// that cannot be read or decoded is skipped so the document still
// renders.
func loadBlockPhotos(app *pocketbase.PocketBase, basePath string, names []string) []ProposalPhoto {
	if len(names) == 0 {
		return nil
	}

	fsys, err := app.NewFilesystem()
	if err != nil {
		log.Printf("proposal: could not open app filesystem: %v", err)
		return nil
	}
	defer fsys.Close()

	var photos []ProposalPhoto
	for _, name := range names {
		r, err := fsys.GetReader(basePath + "/" + name)
		if err != nil {
			log.Printf("proposal: skipping missing photo %s: %v", name, err)
			continue
		}
		raw, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			log.Printf("proposal: skipping unreadable photo %s: %v", name, err)
			continue
		}
		photo, err := decodePhoto(raw)
		if err != nil {
			log.Printf("proposal: skipping undecodable photo %s: %v", name, err)
			continue
		}
		photos = append(photos, photo)
	}
	return photos
}

// decodePhoto sniffs dimensions and format without a full decode.
func decodePhoto(raw []byte) (ProposalPhoto, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return ProposalPhoto{}, fmt.Errorf("decode photo config: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return ProposalPhoto{}, fmt.Errorf("unsupported photo format %q", format)
	}
	return ProposalPhoto{Bytes: raw, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// resolveBranding fills logo, watermark and cover assets when present
// on disk.
func resolveBranding(data *ProposalData) {
	if _, err := os.Stat(LogoFile); err == nil {
		data.LogoPath = LogoFile

		wm, err := EnsureWatermark(LogoFile, WatermarkFile)
		if err != nil {
			log.Printf("proposal: watermark unavailable: %v", err)
		} else {
			data.WatermarkPath = wm
		}
	}
	data.CoverPages = CoverPagePaths()
	data.ClosingPages = ClosingPagePaths()
}
