package services

import "testing"

func TestSanitizeEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii untouched", "Window Sealing", "Window Sealing"},
		{"latin-1 accents kept", "Impermeabilização de Janelas", "Impermeabilização de Janelas"},
		{"smart quotes substituted", "“selante”", `"selante"`},
		{"em dash substituted", "antes — depois", "antes - depois"},
		{"unsupported replaced", "laudo 中 técnico", "laudo ? técnico"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeEncoding(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeEncoding(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
