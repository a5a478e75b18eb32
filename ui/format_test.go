package ui

import "testing"

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ISO date", "2008-03-14", "March 14, 2008"},
		{"RFC3339", "2008-03-14T00:00:00Z", "March 14, 2008"},
		{"US slashes", "07/02/2009", "July 2, 2009"},
		{"Already formatted", "January 2, 2006", "January 2, 2006"},
		{"Empty stays empty", "", ""},
		{"Garbage passes through", "not-a-date", "not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.input); got != tt.expected {
				t.Errorf("FormatDate(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		expected string
	}{
		{"USD with grouping", 1234.5, "USD", "$1,234.50"},
		{"USD whole", 40, "USD", "$40.00"},
		{"Unknown code falls back", 10, "XTS", "XTS 10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.amount, tt.currency); got != tt.expected {
				t.Errorf("FormatCurrency(%v, %q) = %q, expected %q", tt.amount, tt.currency, got, tt.expected)
			}
		})
	}
}
