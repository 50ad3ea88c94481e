package auth

import (
	"regexp"
)

const MinPasswordLength = 8

var (
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	digitRegex   = regexp.MustCompile(`\d`)
	specialRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// ValidPassword requires at least 8 chars with a lowercase letter, an uppercase letter,
// a digit and a special character.
func ValidPassword(pw string) bool {
	if len(pw) < MinPasswordLength {
		return false
	}
	return lowerRegex.MatchString(pw) &&
		upperRegex.MatchString(pw) &&
		digitRegex.MatchString(pw) &&
		specialRegex.MatchString(pw)
}
