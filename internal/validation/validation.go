package validation

import (
	"strings"
	"unicode"
)

// HasSpecialChar reports whether s contains at least one symbol or punctuation rune.
func HasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}

// ValidPassword enforces the minimum password policy.
func ValidPassword(s string) bool {
	return len(s) >= 8 && HasSpecialChar(s)
}

// ValidCurrency accepts ISO-4217-like three letter codes.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range strings.ToUpper(code) {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
