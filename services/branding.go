package services

import (
	"path/filepath"
	"sort"
)

// Fixed company identity printed on every proposal.
const (
	CompanyName  = "UPDOWN SERVIÇOS DE ALTA PERFORMANCE"
	CompanyTaxID = "CNPJ: 36.130.036/0001-37"
	CompanyCity  = "Ponta Grossa - PR"
)

// Branding asset locations. All assets are optional; a proposal
// renders without any of them.
const (
	AssetsDir     = "assets"
	LogoFile      = "assets/logo.png"
	WatermarkFile = "assets/watermark.png"
)

// CoverPagePaths returns the intro cover images in lexical order.
func CoverPagePaths() []string {
	return globSorted(filepath.Join(AssetsDir, "cover_*"))
}

// ClosingPagePaths returns the closing cover images in lexical order.
func ClosingPagePaths() []string {
	return globSorted(filepath.Join(AssetsDir, "closing_*"))
}

func globSorted(pattern string) []string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}
