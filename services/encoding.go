package services

import "strings"

// substitutions maps common characters outside the document codepage
// to close ASCII equivalents.
var substitutions = map[rune]string{
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'–': "-",
	'—': "-",
	'…': "...",
	' ': " ",
	'•': "*",
	'€': "EUR",
}

// SanitizeEncoding re-encodes text for the PDF's Latin-1 fonts.
// Characters the codepage cannot represent are substituted or replaced
// with "?" instead of failing the render.
func SanitizeEncoding(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x100:
			b.WriteRune(r)
		default:
			if sub, ok := substitutions[r]; ok {
				b.WriteString(sub)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
