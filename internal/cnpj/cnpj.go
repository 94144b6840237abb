// Package cnpj normalizes and validates Brazilian company registry identifiers.
package cnpj

import (
	"regexp"
	"strings"
)

// Length is the number of digits in a normalized CNPJ.
const Length = 14

// MinPadDigits is the shortest digit string that gets zero-padded. Shorter
// inputs are rejected instead of being inflated into an unrelated identifier.
const MinPadDigits = 12

var nonDigit = regexp.MustCompile(`[^0-9]`)

// Clean strips every character that is not an ASCII digit.
func Clean(raw string) string {
	return nonDigit.ReplaceAllString(raw, "")
}

// Normalize cleans raw and restores leading zeros lost by spreadsheet
// tools. It returns the resulting digit string and whether it is a valid
// 14-digit identifier.
func Normalize(raw string) (string, bool) {
	digits := Clean(strings.TrimSpace(raw))
	if len(digits) >= MinPadDigits && len(digits) < Length {
		digits = strings.Repeat("0", Length-len(digits)) + digits
	}
	return digits, Valid(digits)
}

// Valid reports whether id is exactly 14 ASCII digits.
func Valid(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// Format renders a valid identifier as NN.NNN.NNN/NNNN-NN. Invalid input is
// returned unchanged.
func Format(id string) string {
	if !Valid(id) {
		return id
	}
	return id[0:2] + "." + id[2:5] + "." + id[5:8] + "/" + id[8:12] + "-" + id[12:14]
}
