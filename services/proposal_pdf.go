package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Layout constants for the proposal body.
const (
	// Minimum free vertical space (mm) required before a new section
	// may start on the current page.
	sectionGuardHeight = 45.0

	// Character budget for material names in the table.
	materialNameBudget = 48

	// Maximum rendered photo height in mm.
	photoMaxHeight = 110.0

	// Usable content width in mm (A4 minus side margins).
	contentWidth = 190.0
)

// GenerateProposalPDF renders the full proposal document: intro cover
// pages, the quote body with repeating branded header and watermark,
// and closing cover pages. Cover pages are separate full-bleed pages
// merged around the body, so they skip the standard header.
func GenerateProposalPDF(data *ProposalData) ([]byte, error) {
	body, err := generateBody(data)
	if err != nil {
		return nil, err
	}

	covers := loadCoverImages(data.CoverPages)
	closings := loadCoverImages(data.ClosingPages)
	if len(covers) == 0 && len(closings) == 0 {
		return body, nil
	}

	parts := make([][]byte, 0, len(covers)+len(closings)+1)
	for _, c := range covers {
		part, err := generateCoverPage(c)
		if err != nil {
			log.Printf("proposal: skipping cover page: %v", err)
			continue
		}
		parts = append(parts, part)
	}
	parts = append(parts, body)
	for _, c := range closings {
		part, err := generateCoverPage(c)
		if err != nil {
			log.Printf("proposal: skipping closing page: %v", err)
			continue
		}
		parts = append(parts, part)
	}

	if len(parts) == 1 {
		return body, nil
	}
	return mergeParts(parts)
}

// generateBody renders the interior pages of the proposal.
func generateBody(data *ProposalData) ([]byte, error) {
	builder := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		})

	if data.WatermarkPath != "" {
		if wm, err := os.ReadFile(data.WatermarkPath); err == nil {
			builder = builder.WithBackgroundImage(wm, extension.Png)
		} else {
			log.Printf("proposal: watermark unreadable, rendering without it: %v", err)
		}
	}

	m := maroto.New(builder.Build())

	if err := m.RegisterHeader(buildPageHeader(data)...); err != nil {
		return nil, fmt.Errorf("register header: %w", err)
	}

	addClientHeader(m, data)

	for _, block := range data.Blocks {
		addBlockSection(m, block)
	}

	addCommercialTerms(m, data)
	addFinalTotals(m, data)
	addFooterNotes(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate proposal PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// buildPageHeader returns the repeating header rows: logo on the left,
// company identification on the right.
func buildPageHeader(data *ProposalData) []core.Row {
	nameText := props.Text{
		Size:  10,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	detailText := props.Text{
		Size:  7,
		Align: align.Right,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	headerRow := row.New(16)
	if data.LogoPath != "" {
		headerRow.Add(
			image.NewFromFileCol(3, data.LogoPath, props.Rect{
				Center:  false,
				Percent: 90,
			}),
			col.New(9).Add(
				text.New(SanitizeEncoding(CompanyName), nameText),
				text.New(CompanyTaxID+"  |  "+CompanyCity, props.Text{
					Size:  7,
					Top:   6,
					Align: align.Right,
					Color: detailText.Color,
				}),
			),
		)
	} else {
		headerRow.Add(
			col.New(12).Add(
				text.New(SanitizeEncoding(CompanyName), nameText),
				text.New(CompanyTaxID+"  |  "+CompanyCity, props.Text{
					Size:  7,
					Top:   6,
					Align: align.Right,
					Color: detailText.Color,
				}),
			),
		)
	}

	divider := row.New(2).Add(
		col.New(12),
	).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: &props.Color{Red: 200, Green: 200, Blue: 200}})

	return []core.Row{headerRow, divider}
}

// addClientHeader emits the title and the client identification block.
func addClientHeader(m core.Maroto, data *ProposalData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("PROPOSTA COMERCIAL", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(4),
	)

	label := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	value := props.Text{
		Size:  10,
		Align: align.Left,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New("DADOS DO CLIENTE", label)),
		),
		row.New(7).Add(
			col.New(2).Add(text.New("Cliente:", label)),
			col.New(10).Add(text.New(SanitizeEncoding(data.ClientName), value)),
		),
		row.New(7).Add(
			col.New(2).Add(text.New("CNPJ/CPF:", label)),
			col.New(10).Add(text.New(SanitizeEncoding(data.ClientTaxID), value)),
		),
		row.New(7).Add(
			col.New(2).Add(text.New("Data:", label)),
			col.New(4).Add(text.New(data.IssueDate, value)),
			col.New(2).Add(text.New("Validade:", label)),
			col.New(4).Add(text.New(data.ValidUntil, value)),
		),
		row.New(5),
	)
}

// addBlockSection renders one numbered service section. A page break
// is forced first when the section would start too close to the page
// bottom, so the title bar never gets orphaned.
func addBlockSection(m core.Maroto, block ProposalBlock) {
	if !m.FitlnCurrentPage(sectionGuardHeight) {
		m.AddPages(page.New())
	}

	titleBg := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("%d. %s", block.Number, SanitizeEncoding(block.Title)), props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
					Left:  2,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(titleBg),
		),
		row.New(2),
	)

	if block.DamageDescription != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New("Diagnóstico / Avaria identificada:", props.Text{
						Size:  8,
						Style: fontstyle.Bold,
						Align: align.Left,
						Color: &props.Color{Red: 180, Green: 30, Blue: 30},
					}),
				),
			),
			textRows(block.DamageDescription, props.Text{
				Size:  9,
				Align: align.Left,
				Color: &props.Color{Red: 180, Green: 30, Blue: 30},
			}),
			row.New(2),
		)
	}

	addBlockPhotos(m, block.Photos)

	if block.TechnicalDescription != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New("Solução técnica:", props.Text{
						Size:  8,
						Style: fontstyle.Bold,
						Align: align.Left,
					}),
				),
			),
			textRows(block.TechnicalDescription, props.Text{
				Size:  9,
				Align: align.Left,
			}),
			row.New(2),
		)
	}

	addMaterialsTable(m, block)
	addBlockTotals(m, block)
	m.AddRows(row.New(5))
}

// addBlockPhotos lays out up to three photos left-to-right. A solitary
// photo takes the full content width; multiple photos take half each,
// wrapping onto a second row. Heights preserve each photo's aspect
// ratio.
func addBlockPhotos(m core.Maroto, photos []ProposalPhoto) {
	if len(photos) == 0 {
		return
	}

	colSize := 6
	colWidth := contentWidth / 2
	if len(photos) == 1 {
		colSize = 12
		colWidth = contentWidth
	}

	for start := 0; start < len(photos); start += 2 {
		end := start + 2
		if end > len(photos) {
			end = len(photos)
		}
		chunk := photos[start:end]

		var rowHeight float64
		var cols []core.Col
		for _, p := range chunk {
			h := photoHeight(p, colWidth)
			if h > rowHeight {
				rowHeight = h
			}
			cols = append(cols, image.NewFromBytesCol(colSize, p.Bytes, photoExtension(p), props.Rect{
				Center:  true,
				Percent: 100,
			}))
		}

		m.AddRows(row.New(rowHeight).Add(cols...), row.New(2))
	}
}

// photoHeight computes the rendered height for a photo of the given
// column width, preserving the original aspect ratio with a cap.
func photoHeight(p ProposalPhoto, colWidth float64) float64 {
	if p.Width <= 0 || p.Height <= 0 {
		return photoMaxHeight / 2
	}
	h := colWidth * float64(p.Height) / float64(p.Width)
	if h > photoMaxHeight {
		return photoMaxHeight
	}
	return h
}

func photoExtension(p ProposalPhoto) extension.Type {
	if p.Format == "png" {
		return extension.Png
	}
	return extension.Jpg
}

// addMaterialsTable renders the block's material lines.
func addMaterialsTable(m core.Maroto, block ProposalBlock) {
	if len(block.Lines) == 0 {
		return
	}

	headerBg := &props.Cell{BackgroundColor: &props.Color{Red: 235, Green: 235, Blue: 235}}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Material / Serviço", headerTextLeft)).WithStyle(headerBg),
			col.New(2).Add(text.New("Qtd", headerText)).WithStyle(headerBg),
			col.New(2).Add(text.New("Vl. Unit", headerText)).WithStyle(headerBg),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(headerBg),
		),
	)

	cellText := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightText := cellText
	rightText.Align = align.Right
	centerText := cellText
	centerText.Align = align.Center

	for _, line := range block.Lines {
		name := SanitizeEncoding(TruncateName(line.Name, materialNameBudget))
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(text.New(name, cellText)),
				col.New(2).Add(text.New(FormatQuantity(line.Quantity), centerText)),
				col.New(2).Add(text.New(FormatBRL(line.UnitPrice), rightText)),
				col.New(2).Add(text.New(FormatBRL(line.LineTotal), rightText)),
			),
		)
	}
}

// addBlockTotals breaks out materials and labor, then the block total.
func addBlockTotals(m core.Maroto, block ProposalBlock) {
	label := props.Text{
		Size:  8,
		Align: align.Right,
	}
	boldLabel := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(5).Add(
			col.New(9).Add(text.New("Materiais:", label)),
			col.New(3).Add(text.New(FormatBRL(block.Totals.MaterialsSubtotal), label)),
		),
		row.New(5).Add(
			col.New(9).Add(text.New("Mão de obra:", label)),
			col.New(3).Add(text.New(FormatBRL(block.Totals.LaborCost), label)),
		),
		row.New(6).Add(
			col.New(9).Add(text.New(fmt.Sprintf("Total do serviço %d:", block.Number), boldLabel)),
			col.New(3).Add(text.New(FormatBRL(block.Totals.BlockTotal), boldLabel)),
		),
	)
}

// addCommercialTerms emits the payment/validity text section.
func addCommercialTerms(m core.Maroto, data *ProposalData) {
	if data.CommercialTerms == "" {
		return
	}
	if !m.FitlnCurrentPage(sectionGuardHeight) {
		m.AddPages(page.New())
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("CONDIÇÕES COMERCIAIS", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
		textRows(data.CommercialTerms, props.Text{
			Size:  9,
			Align: align.Left,
		}),
		row.New(4),
	)
}

// addFinalTotals renders the totals block. The subtotal/adjustment
// breakout only appears when the final total differs from the
// computed subtotal.
func addFinalTotals(m core.Maroto, data *ProposalData) {
	if !m.FitlnCurrentPage(sectionGuardHeight) {
		m.AddPages(page.New())
	}

	totals := data.Totals
	label := props.Text{
		Size:  10,
		Align: align.Right,
	}

	if totals.AdjustmentValue != 0 {
		adjustLabel := "Ajuste"
		if totals.AdjustmentValue < 0 {
			adjustLabel = "Desconto"
		}
		if !totals.Overridden {
			adjustLabel = fmt.Sprintf("%s (%s%%)", adjustLabel, FormatQuantity(totals.AdjustmentPercent))
		}

		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(text.New("Subtotal:", label)),
				col.New(3).Add(text.New(FormatBRL(totals.Subtotal), label)),
			),
			row.New(6).Add(
				col.New(9).Add(text.New(adjustLabel+":", label)),
				col.New(3).Add(text.New(FormatBRL(totals.AdjustmentValue), label)),
			),
		)
	}

	finalBg := &props.Cell{BackgroundColor: &props.Color{Red: 33, Green: 37, Blue: 41}}
	finalText := props.Text{
		Size:  13,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	m.AddRows(
		row.New(10).Add(
			col.New(9).Add(text.New("TOTAL FINAL:", props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: finalText.Color,
			})).WithStyle(finalBg),
			col.New(3).Add(text.New(FormatBRL(totals.FinalTotal), finalText)).WithStyle(finalBg),
		),
		row.New(4),
	)
}

// addFooterNotes emits the free-form observations section.
func addFooterNotes(m core.Maroto, data *ProposalData) {
	if data.FooterNotes == "" {
		return
	}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("OBSERVAÇÕES", props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
		textRows(data.FooterNotes, props.Text{
			Size:  8,
			Align: align.Left,
		}),
	)
}

// textRows wraps a free-flowing text into a single auto-sized row.
func textRows(content string, style props.Text) core.Row {
	lines := 1 + len(content)/90
	height := float64(lines) * 5
	if height < 6 {
		height = 6
	}
	return row.New(height).Add(
		col.New(12).Add(text.New(SanitizeEncoding(content), style)),
	)
}

// generateCoverPage renders one full-bleed cover image as its own
// single-page document, without the standard header or page number.
func generateCoverPage(img coverImage) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		image.NewFromBytesRow(noHeaderPageHeight, img.bytes, img.ext, props.Rect{
			Center:  true,
			Percent: 100,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cover page: %w", err)
	}
	return doc.GetBytes(), nil
}

// Printable height of a cover page in mm.
const noHeaderPageHeight = 270.0

type coverImage struct {
	bytes []byte
	ext   extension.Type
}

// loadCoverImages reads cover assets, skipping anything unreadable.
func loadCoverImages(paths []string) []coverImage {
	var images []coverImage
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			log.Printf("proposal: skipping missing cover asset %s: %v", p, err)
			continue
		}
		photo, err := decodePhoto(raw)
		if err != nil {
			log.Printf("proposal: skipping invalid cover asset %s: %v", p, err)
			continue
		}
		images = append(images, coverImage{bytes: raw, ext: photoExtension(photo)})
	}
	return images
}

// mergeParts concatenates the cover, body and closing documents.
func mergeParts(parts [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, fmt.Errorf("merge proposal parts: %w", err)
	}
	return out.Bytes(), nil
}
