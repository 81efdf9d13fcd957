// Package scoring ranks clients by engagement and buying power.
package scoring

import "strings"

// Rating buckets a score for at-a-glance triage.
type Rating string

const (
	RatingHot  Rating = "Hot"
	RatingWarm Rating = "Warm"
	RatingCold Rating = "Cold"
)

// Thresholds for rating buckets.
const (
	hotThreshold  = 70
	warmThreshold = 40
)

// Status values that indicate late-pipeline momentum.
const (
	StatusNegotiating      = "Negotiating"
	StatusSiteVisitPlanned = "Site Visit Planned"
)

// Input carries the signals the score is computed from.
type Input struct {
	// ListingType is "Sale" or "Rent".
	ListingType string
	// Budget is in rupees, already extracted from the requirements text.
	Budget int64
	// Requirements is the raw free-text, checked for location flexibility.
	Requirements string
	// LogCount is the number of recorded interactions.
	LogCount int
	// Status is the pipeline status.
	Status string
}

// Score computes the lead score. Higher is better; the score is unbounded
// above and can go negative for flexible-location clients with no other
// signals.
func Score(in Input) int {
	score := 0

	if in.ListingType == "Sale" {
		switch {
		case in.Budget > 10_000_000:
			score += 30
		case in.Budget > 5_000_000:
			score += 15
		}
	} else {
		switch {
		case in.Budget > 50_000:
			score += 30
		case in.Budget > 25_000:
			score += 15
		}
	}

	if strings.Contains(strings.ToLower(in.Requirements), "anywhere") {
		score -= 10
	}

	score += in.LogCount * 10

	switch in.Status {
	case StatusNegotiating:
		score += 40
	case StatusSiteVisitPlanned:
		score += 25
	}

	return score
}

// Rate buckets a score into Hot, Warm or Cold.
func Rate(score int) Rating {
	switch {
	case score >= hotThreshold:
		return RatingHot
	case score >= warmThreshold:
		return RatingWarm
	default:
		return RatingCold
	}
}
