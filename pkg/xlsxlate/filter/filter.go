// Package filter decides which text fragments are sent for translation.
package filter

import (
	"regexp"
	"strings"
)

// codePattern matches tracking numbers, SKUs and abbreviations: uppercase
// ASCII letters, digits, whitespace and - _ . / ( ) only.
var codePattern = regexp.MustCompile(`^[A-Z0-9\s\-_./()]+$`)

// FormulaMarker is the leading character of a formula expression.
const FormulaMarker = "="

// IsEligible reports whether text should be sent for translation.
// Empty, whitespace-only and code-like text are passed through unchanged.
func IsEligible(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return !IsCode(trimmed)
}

// IsCode reports whether text consists solely of code characters.
func IsCode(text string) bool {
	return codePattern.MatchString(strings.TrimSpace(text))
}

// IsFormula reports whether a cell string value is a formula expression.
func IsFormula(value string) bool {
	return strings.HasPrefix(value, FormulaMarker)
}
