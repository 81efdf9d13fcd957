package scoring

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want int
	}{
		{
			name: "high budget sale",
			in:   Input{ListingType: "Sale", Budget: 12_000_000},
			want: 30,
		},
		{
			name: "mid budget sale",
			in:   Input{ListingType: "Sale", Budget: 6_000_000},
			want: 15,
		},
		{
			name: "low budget sale",
			in:   Input{ListingType: "Sale", Budget: 4_000_000},
			want: 0,
		},
		{
			name: "sale boundary is exclusive",
			in:   Input{ListingType: "Sale", Budget: 10_000_000},
			want: 15,
		},
		{
			name: "high rent",
			in:   Input{ListingType: "Rent", Budget: 60_000},
			want: 30,
		},
		{
			name: "mid rent",
			in:   Input{ListingType: "Rent", Budget: 30_000},
			want: 15,
		},
		{
			name: "anywhere penalty",
			in:   Input{ListingType: "Rent", Budget: 10_000, Requirements: "2 BHK Anywhere"},
			want: -10,
		},
		{
			name: "log engagement",
			in:   Input{ListingType: "Sale", LogCount: 3},
			want: 30,
		},
		{
			name: "negotiating bonus",
			in:   Input{ListingType: "Sale", Status: StatusNegotiating},
			want: 40,
		},
		{
			name: "site visit bonus",
			in:   Input{ListingType: "Sale", Status: StatusSiteVisitPlanned},
			want: 25,
		},
		{
			name: "all signals combined",
			in: Input{
				ListingType:  "Sale",
				Budget:       12_000_000,
				Requirements: "4 BHK in Juhu, Budget 120L",
				LogCount:     2,
				Status:       StatusNegotiating,
			},
			want: 90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.in); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		score int
		want  Rating
	}{
		{100, RatingHot},
		{70, RatingHot},
		{69, RatingWarm},
		{40, RatingWarm},
		{39, RatingCold},
		{0, RatingCold},
		{-10, RatingCold},
	}

	for _, tt := range tests {
		if got := Rate(tt.score); got != tt.want {
			t.Errorf("Rate(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
