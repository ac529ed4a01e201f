package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeEmail trims and lower-cases an email address. All lookups by
// email go through it.
func NormalizeEmail(email string) string {
	// a Caser keeps state, so one per call
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}
