package services

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildWhatsAppLink returns a wa.me deep link with a pre-filled message
// summarizing a generated quote. The application never sends the
// message; it only prepares the link for the operator to hand off.
// Returns "" when the contact number has no usable digits.
func BuildWhatsAppLink(contactNumber, clientName string, finalTotal float64) string {
	digits := onlyDigits(contactNumber)
	if digits == "" {
		return ""
	}
	// Numbers stored without a country code get the Brazilian prefix.
	if len(digits) <= 11 {
		digits = "55" + digits
	}

	message := fmt.Sprintf(
		"Olá %s! Segue o orçamento solicitado no valor de %s. Qualquer dúvida estou à disposição.",
		clientName, FormatBRL(finalTotal),
	)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
