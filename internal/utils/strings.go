package utils

import (
	"regexp"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// IsValidPIN reports whether pin is exactly four digits, the format the
// CLI asks for.
func IsValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}
