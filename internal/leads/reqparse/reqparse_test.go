package reqparse

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantBudget   int64
		wantLocality string
		wantRooms    int
	}{
		{
			name:         "sale with lakh budget",
			text:         "3 BHK in Andheri West, Budget 80L",
			wantBudget:   8000000,
			wantLocality: "Andheri West",
			wantRooms:    3,
		},
		{
			name:         "rent with comma amount",
			text:         "2 BHK in Bandra, Rent 30,000",
			wantBudget:   30000,
			wantLocality: "Bandra",
			wantRooms:    2,
		},
		{
			name:         "budget with commas",
			text:         "Budget 1,20 L for a flat in Powai",
			wantBudget:   12000000,
			wantLocality: "Powai",
			wantRooms:    0,
		},
		{
			name:         "no location",
			text:         "4 BHK, Budget 250L",
			wantBudget:   25000000,
			wantLocality: "Any",
			wantRooms:    4,
		},
		{
			name:         "anywhere collapses to any",
			text:         "2BHK in anywhere close to metro, Rent 25000",
			wantBudget:   25000,
			wantLocality: "Any",
			wantRooms:    2,
		},
		{
			name:         "budget wins over rent",
			text:         "Budget 50L, could also Rent 40000 in Thane",
			wantBudget:   5000000,
			wantLocality: "Thane",
			wantRooms:    0,
		},
		{
			name:         "lowercase keywords",
			text:         "1 bhk in kurla, budget 35l",
			wantBudget:   3500000,
			wantLocality: "kurla",
			wantRooms:    1,
		},
		{
			name:         "empty text",
			text:         "",
			wantBudget:   0,
			wantLocality: "Any",
			wantRooms:    0,
		},
		{
			name:         "no numbers at all",
			text:         "spacious flat with sea view",
			wantBudget:   0,
			wantLocality: "Any",
			wantRooms:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if got.Budget != tt.wantBudget {
				t.Errorf("Budget = %d, want %d", got.Budget, tt.wantBudget)
			}
			if got.Locality != tt.wantLocality {
				t.Errorf("Locality = %q, want %q", got.Locality, tt.wantLocality)
			}
			if got.Rooms != tt.wantRooms {
				t.Errorf("Rooms = %d, want %d", got.Rooms, tt.wantRooms)
			}
		})
	}
}

func TestParseBudgetIgnoresMalformedNumbers(t *testing.T) {
	// A budget phrase with no digits falls through to zero rather than
	// matching garbage.
	if got := ParseBudget("Budget to be discussed"); got != 0 {
		t.Fatalf("ParseBudget = %d, want 0", got)
	}
}
