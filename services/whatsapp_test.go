package services

import (
	"strings"
	"testing"
)

func TestBuildWhatsAppLink(t *testing.T) {
	tests := []struct {
		name       string
		contact    string
		client     string
		total      float64
		wantPrefix string
		wantEmpty  bool
	}{
		{
			name:       "formatted local number",
			contact:    "(42) 99999-1234",
			client:     "Acme Corp",
			total:      2400,
			wantPrefix: "https://wa.me/5542999991234?text=",
		},
		{
			name:       "number with country code kept",
			contact:    "+55 42 99999-1234",
			client:     "Acme Corp",
			total:      2400,
			wantPrefix: "https://wa.me/5542999991234?text=",
		},
		{
			name:      "empty contact",
			contact:   "",
			wantEmpty: true,
		},
		{
			name:      "no digits",
			contact:   "n/a",
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildWhatsAppLink(tt.contact, tt.client, tt.total)
			if tt.wantEmpty {
				if got != "" {
					t.Errorf("expected empty link, got %q", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.wantPrefix) {
				t.Errorf("link %q does not start with %q", got, tt.wantPrefix)
			}
			if strings.Contains(got, " ") {
				t.Errorf("link %q contains unescaped spaces", got)
			}
			if !strings.Contains(got, "Acme") {
				t.Errorf("link %q does not mention the client", got)
			}
		})
	}
}

func TestBuildWhatsAppLinkMessageEscaped(t *testing.T) {
	link := BuildWhatsAppLink("42999991234", "Condomínio Sol & Mar", 1500)
	if strings.Contains(link, "&") && !strings.Contains(link, "%26") {
		t.Errorf("ampersand in client name not escaped: %q", link)
	}
	if !strings.Contains(link, "R%24+1.500%2C00") {
		t.Errorf("expected escaped BRL total in %q", link)
	}
}
