// Package reqparse extracts structured requirements from free-text client
// notes like "3 BHK in Andheri West, Budget 80L".
package reqparse

import (
	"regexp"
	"strconv"
	"strings"
)

// AnyLocality is the sentinel used when no locality preference is found.
const AnyLocality = "Any"

// lakh is the multiplier for budgets quoted in lakhs.
const lakh = 100_000

var (
	budgetRe   = regexp.MustCompile(`(?i)budget[^\d]*([\d,]+)`)
	rentRe     = regexp.MustCompile(`(?i)rent[^\d]*([\d,]+)`)
	localityRe = regexp.MustCompile(`(?i)\bin\s+([\w\s]+)`)
	roomsRe    = regexp.MustCompile(`(?i)(\d+)\s*BHK`)
)

// Requirement is the structured form of a client's free-text requirements.
type Requirement struct {
	// Budget is in rupees. A "Budget 80L" phrase yields 8000000; a
	// "Rent 30,000" phrase yields 30000.
	Budget int64
	// Locality is the trimmed location preference, or AnyLocality when the
	// text names no location or says "anywhere".
	Locality string
	// Rooms is the minimum BHK count, 0 when unspecified.
	Rooms int
}

// Parse extracts budget, locality and room count from requirements text.
// Unparseable fields get zero values, never errors: free text is allowed to
// be incomplete.
func Parse(text string) Requirement {
	return Requirement{
		Budget:   ParseBudget(text),
		Locality: ParseLocality(text),
		Rooms:    ParseRooms(text),
	}
}

// ParseBudget finds a purchase budget (quoted in lakhs) or a monthly rent
// (quoted in rupees). A "Budget" phrase wins over a "Rent" phrase.
func ParseBudget(text string) int64 {
	if m := budgetRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err == nil {
			return n * lakh
		}
	}
	if m := rentRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if err == nil {
			return n
		}
	}
	return 0
}

// ParseLocality finds the first "in <place>" phrase. "anywhere" collapses to
// AnyLocality, as does text with no location at all.
func ParseLocality(text string) string {
	m := localityRe.FindStringSubmatch(text)
	if m == nil {
		return AnyLocality
	}
	locality := strings.TrimSpace(m[1])
	if strings.Contains(strings.ToLower(locality), "anywhere") {
		return AnyLocality
	}
	return locality
}

// ParseRooms finds the BHK count, e.g. "3 BHK" or "2BHK".
func ParseRooms(text string) int {
	m := roomsRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
