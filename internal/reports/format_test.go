package reports

import "testing"

func TestFormatINR(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "₹0"},
		{"hundreds", 500, "₹500"},
		{"thousands", 45000, "₹45,000"},
		{"lakh", 500000, "₹5,00,000"},
		{"ten lakh", 7500000, "₹75,00,000"},
		{"crore", 12345678, "₹1,23,45,678"},
		{"exact crore", 10000000, "₹1,00,00,000"},
		{"negative", -45000, "-₹45,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatINR(tt.amount); got != tt.want {
				t.Errorf("formatINR(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
