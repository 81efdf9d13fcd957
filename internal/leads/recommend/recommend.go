// Package recommend matches properties to a client's parsed requirements
// using a three-tier relaxation: in budget and in the preferred locality,
// then in budget anywhere, then anything of the right type and size.
package recommend

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"estate_crm_backend/internal/leads/reqparse"
)

// Messages returned alongside the match list.
const (
	msgNoLocationMatches = "No exact location matches, showing similar properties."
	msgNoBudgetMatches   = "No matches in budget, showing similar properties."
	msgNoMatches         = "No suitable properties found."
)

var leadingDigitsRe = regexp.MustCompile(`(\d+)`)

// Property is a candidate listing.
type Property struct {
	ID          string
	Code        string
	Title       string
	ListingType string
	// Bedrooms is the free-text BHK label, e.g. "3 BHK".
	Bedrooms string
	Locality string
	// AskingPrice is set for Sale listings, MonthlyRent for Rent listings.
	AskingPrice *int64
	MonthlyRent *int64
}

// Profile is the client side of the match.
type Profile struct {
	// ListingType is "Sale" or "Rent".
	ListingType string
	Requirement reqparse.Requirement
}

// Options tunes the engine.
type Options struct {
	// BudgetTolerance is the multiplier applied to the client's budget to
	// form the price ceiling. 1.15 accepts listings up to 15% over budget.
	BudgetTolerance float64
	// MaxResults caps the returned list.
	MaxResults int
}

// DefaultOptions are the production defaults.
func DefaultOptions() Options {
	return Options{BudgetTolerance: 1.15, MaxResults: 10}
}

// Result is the match outcome.
type Result struct {
	Message    string
	Properties []Property
}

// Recommend ranks candidates for the client. The input order is preserved
// within each tier, so the result is deterministic for a given candidate
// slice.
func Recommend(profile Profile, candidates []Property, opts Options) Result {
	if opts.BudgetTolerance <= 0 {
		opts.BudgetTolerance = 1.15
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}

	req := profile.Requirement
	ceiling := float64(req.Budget) * opts.BudgetTolerance
	hasLocality := req.Locality != reqparse.AnyLocality

	var tier1, tier2, tier3 []Property
	for _, p := range candidates {
		if !strings.EqualFold(p.ListingType, profile.ListingType) {
			continue
		}
		if bhkCount(p.Bedrooms) < req.Rooms {
			continue
		}
		tier3 = append(tier3, p)

		price, ok := priceFor(p, profile.ListingType)
		if !ok || float64(price) > ceiling {
			continue
		}
		tier2 = append(tier2, p)

		if hasLocality && !containsFold(p.Locality, req.Locality) {
			continue
		}
		tier1 = append(tier1, p)
	}

	// When the client has no locality preference tier 1 and tier 2 are the
	// same set; the in-locality message still applies.
	final := dedupe(opts.MaxResults, tier1, tier2, tier3)

	var message string
	switch {
	case len(final) == 0:
		message = msgNoMatches
	case len(tier1) > 0:
		message = fmt.Sprintf("Found %d great matches!", len(final))
	case len(tier2) > 0:
		message = msgNoLocationMatches
	default:
		message = msgNoBudgetMatches
	}

	return Result{Message: message, Properties: final}
}

// dedupe concatenates the tiers, keeps the first occurrence of each property
// and caps the result.
func dedupe(max int, tiers ...[]Property) []Property {
	seen := make(map[string]struct{})
	var out []Property
	for _, tier := range tiers {
		for _, p := range tier {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
			if len(out) == max {
				return out
			}
		}
	}
	return out
}

// bhkCount extracts the leading number from a BHK label, 0 when absent.
func bhkCount(bedrooms string) int {
	m := leadingDigitsRe.FindStringSubmatch(bedrooms)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// priceFor picks the price column for the client's listing type. Listings
// with no price in that column never qualify for the budget tiers.
func priceFor(p Property, listingType string) (int64, bool) {
	if strings.EqualFold(listingType, "Sale") {
		if p.AskingPrice == nil {
			return 0, false
		}
		return *p.AskingPrice, true
	}
	if p.MonthlyRent == nil {
		return 0, false
	}
	return *p.MonthlyRent, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
