package services

import "testing"

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "R$ 0,00"},
		{"small", 950, "R$ 950,00"},
		{"thousands", 2400, "R$ 2.400,00"},
		{"cents", 1234.56, "R$ 1.234,56"},
		{"millions", 1234567.89, "R$ 1.234.567,89"},
		{"exactly three digits", 999.99, "R$ 999,99"},
		{"exactly four digits", 1000, "R$ 1.000,00"},
		{"negative", -500.5, "-R$ 500,50"},
		{"negative thousands", -12345.67, "-R$ 12.345,67"},
		{"rounding", 0.005, "R$ 0,01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBRL(tt.amount)
			if got != tt.want {
				t.Errorf("FormatBRL(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		name string
		qty  float64
		want string
	}{
		{"whole number drops decimals", 2, "2"},
		{"one", 1, "1"},
		{"half uses comma", 2.5, "2,5"},
		{"two decimals", 2.25, "2,25"},
		{"trailing zero trimmed", 3.10, "3,1"},
		{"large whole", 1500, "1500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQuantity(tt.qty)
			if got != tt.want {
				t.Errorf("FormatQuantity(%v) = %q, want %q", tt.qty, got, tt.want)
			}
		})
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short name untouched", "Selante", 40, "Selante"},
		{"exact length untouched", "abcd", 4, "abcd"},
		{"long name cut", "Impermeabilização de Janelas (Kit Completo Premium)", 20, "Impermeabilização de"},
		{"accents not split", "ção", 2, "çã"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateName(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("TruncateName(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}
