package repository

import "testing"

func TestStatusFor(t *testing.T) {
	tests := []struct {
		taskType string
		want     string
	}{
		{TypeSiteVisit, "Site Visit Planned"},
		{TypeNegotiation, "Negotiating"},
		{"Follow-up Call", ""},
		{"Document Collection", ""},
		{"", ""},
		{"site visit", ""},
	}

	for _, tt := range tests {
		if got := statusFor(tt.taskType); got != tt.want {
			t.Errorf("statusFor(%q) = %q, want %q", tt.taskType, got, tt.want)
		}
	}
}
