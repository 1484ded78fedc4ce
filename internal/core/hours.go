// Package core provides the time-tracking domain model: entry and user
// types, the category taxonomy, hour parsing, and pure aggregation
// functions over entry collections.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	// MinHours and MaxHours bound a single entry's duration.
	MinHours = 0.5
	MaxHours = 24.0
)

// ValidateHours checks that h lies in [0.5, 24] on a half-hour step.
// Half units are exactly representable in binary floating point, so the
// step check is an exact comparison, not an epsilon test.
func ValidateHours(h float64) error {
	if h < MinHours || h > MaxHours {
		return ErrInvalidHours
	}
	doubled := h * 2
	if doubled != float64(int64(doubled)) {
		return ErrInvalidHours
	}
	return nil
}

// ParseHours converts a decimal string to an hour amount.
//
// It accepts both dot (2.5) and comma (2,5) decimal separators. Only whole
// and half hours are valid, so the fractional part must be empty, "0", "00",
// "5" or "50". The result is validated against the [0.5, 24] range.
//
// Examples:
//
//	ParseHours("8")    -> 8, nil
//	ParseHours("2.5")  -> 2.5, nil
//	ParseHours("2,50") -> 2.5, nil
//	ParseHours("2.25") -> 0, ErrInvalidHours
func ParseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidHours
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidHours
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidHours
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidHours
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	var half bool
	switch fracPart {
	case "", "0", "00":
	case "5", "50":
		half = true
	default:
		return 0, ErrInvalidHours
	}
	h := float64(iv)
	if half {
		h += 0.5
	}
	if err := ValidateHours(h); err != nil {
		return 0, err
	}
	return h, nil
}
