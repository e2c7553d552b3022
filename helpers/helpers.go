package helpers

import (
	"strings"

	"golang.org/x/text/width"
)

// NormalizeCode folds a user entered verification code to plain ASCII digits:
// full-width digits are narrowed, dashes and whitespace dropped.
func NormalizeCode(code string) string {
	code = width.Narrow.String(code)
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, code)
}

// NormalizeNumber trims whitespace and narrows full-width characters of a
// phone number, leaving the E.164 form for validation.
func NormalizeNumber(number string) string {
	return strings.TrimSpace(width.Narrow.String(number))
}
