// Package phone normalizes phone numbers to E.164 using libphonenumber data.
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion is used when a number carries no country prefix.
const defaultRegion = "IN"

// Normalize parses the input and returns it in E.164 format, e.g.
// "+919876543210". Numbers without a country code are assumed to be Indian.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("phone number is empty")
	}

	num, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number %q: %w", raw, err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("phone number %q is not valid", raw)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
