// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits, e.g. "(11) 98765-4321"
// becomes "11987654321".
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// ValidateClientContact checks that a contact normalizes to a Brazilian
// phone token: 10 digits (landline) or 11 (mobile with the extra 9).
func ValidateClientContact(contact string) bool {
	digits := NormalizePhone(contact)
	return len(digits) == 10 || len(digits) == 11
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)

// SlugifyUsername lowercases, collapses whitespace into hyphens and drops
// anything that is not URL-safe. Used once at registration; the slug is the
// public gallery address.
func SlugifyUsername(username string) string {
	slug := strings.ToLower(strings.TrimSpace(username))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = strings.Trim(slug, "-")
	return slug
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateHexColor accepts theme tokens like "#e11d48".
func ValidateHexColor(color string) bool {
	return hexColor.MatchString(color)
}
