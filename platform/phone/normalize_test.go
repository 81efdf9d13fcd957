package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare mobile", "9876543210", "+919876543210", false},
		{"with country code", "+91 98765 43210", "+919876543210", false},
		{"with spaces and dashes", "98765-43210", "+919876543210", false},
		{"foreign number", "+44 20 7946 0958", "+442079460958", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too short", "12345", "", true},
		{"letters", "not a number", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
