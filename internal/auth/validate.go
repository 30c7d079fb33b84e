// Package auth holds the credential and token primitives: format
// validation for the closed Northeastern population, bcrypt password
// hashing, and JWT issuance/verification. Everything here is stateless
// beyond explicitly injected configuration.
package auth

import (
	"regexp"
	"strings"
)

var (
	neuEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@northeastern\.edu$`)
	nuidPattern     = regexp.MustCompile(`^[0-9]{9}$`)
)

// NormalizeEmail trims and lowercases an email address. Every lookup and
// every stored email goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateNortheasternEmail reports whether the address belongs to the
// northeastern.edu domain. Case-insensitive; any other domain fails.
func ValidateNortheasternEmail(email string) bool {
	return neuEmailPattern.MatchString(NormalizeEmail(email))
}

// ValidateNUID reports whether the string is exactly nine ASCII digits
// after trimming. No checksum.
func ValidateNUID(nuid string) bool {
	return nuidPattern.MatchString(strings.TrimSpace(nuid))
}
