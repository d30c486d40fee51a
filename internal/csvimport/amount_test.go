package csvimport

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"45.00", 45.00},
		{"$45.00", 45.00},
		{"-12.50", -12.50},
		{"(12.50)", -12.50},
		{"($1,234.56)", -1234.56},
		{"1,234.56", 1234.56},
		{"£99.99", 99.99},
		{"€250", 250},
		{"¥1000", 1000},
		{" 45 ", 45},
		{"$ 1,000.00", 1000},
		{"0", 0},
		{"0.00", 0},
		// A valid numeric prefix wins over trailing junk.
		{"45.00 USD", 45.00},
		{"-12.50 CR", -12.50},
		{"1,234.56EUR", 1234.56},
		{"45.00.50", 45.00},
		// Unparseable input collapses to 0; the pipeline flags these by
		// comparing the raw literal.
		{"abc", 0},
		{"n/a", 0},
		{"", 0},
		{"--5", 0},
		{"(45", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseAmount(tt.in); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
