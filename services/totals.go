// Package services provides the pricing, formatting and document
// generation logic behind the quote builder.
package services

// AdjustmentMin and AdjustmentMax bound the margin/discount slider.
// Values outside the range are clamped, not rejected.
const (
	AdjustmentMin = -50.0
	AdjustmentMax = 50.0
)

// LineForTotals carries the fields of one material line that matter
// for pricing.
type LineForTotals struct {
	Quantity  float64
	UnitPrice float64
}

// BlockForTotals carries one service block's priced content.
type BlockForTotals struct {
	Lines     []LineForTotals
	LaborCost float64
}

// BlockTotals is the per-block rollup shown under each section.
type BlockTotals struct {
	MaterialsSubtotal float64
	LaborCost         float64
	BlockTotal        float64
}

// QuoteTotals is the full pricing summary for a draft.
type QuoteTotals struct {
	Subtotal          float64
	AdjustmentPercent float64
	AdjustmentValue   float64
	FinalTotal        float64
	Overridden        bool
}

// CalcLineTotal returns quantity x unit price. Lines with a
// non-positive quantity contribute nothing.
func CalcLineTotal(quantity, unitPrice float64) float64 {
	if quantity <= 0 {
		return 0
	}
	return quantity * unitPrice
}

// CalcBlockTotals sums a block's material lines and adds its labor cost.
func CalcBlockTotals(block BlockForTotals) BlockTotals {
	var totals BlockTotals
	for _, line := range block.Lines {
		totals.MaterialsSubtotal += CalcLineTotal(line.Quantity, line.UnitPrice)
	}
	totals.LaborCost = block.LaborCost
	totals.BlockTotal = totals.MaterialsSubtotal + block.LaborCost
	return totals
}

// ClampAdjustment confines an adjustment percentage to the allowed
// [-50, +50] range.
func ClampAdjustment(percent float64) float64 {
	if percent < AdjustmentMin {
		return AdjustmentMin
	}
	if percent > AdjustmentMax {
		return AdjustmentMax
	}
	return percent
}

// CalcQuoteTotals computes the draft-level summary. The subtotal is the
// sum of block totals. When adjustPercent is non-zero the adjustment
// value is subtotal * percent / 100. A manual override (hasOverride)
// wins over everything: the final total becomes exactly the override
// and the reported adjustment becomes the difference between the
// override and the subtotal, regardless of the percent that was
// entered.
func CalcQuoteTotals(blocks []BlockForTotals, adjustPercent float64, override float64, hasOverride bool) QuoteTotals {
	var totals QuoteTotals
	for _, block := range blocks {
		totals.Subtotal += CalcBlockTotals(block).BlockTotal
	}

	totals.AdjustmentPercent = ClampAdjustment(adjustPercent)
	totals.AdjustmentValue = totals.Subtotal * totals.AdjustmentPercent / 100
	totals.FinalTotal = totals.Subtotal + totals.AdjustmentValue

	if hasOverride {
		totals.Overridden = true
		totals.FinalTotal = override
		totals.AdjustmentValue = override - totals.Subtotal
	}
	return totals
}
