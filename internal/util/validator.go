package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxAmount caps a single collection.
const MaxAmount = 100_000_000

// ValidateAmount checks a collection amount: finite, not negative, under MaxAmount.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount is not a number")
	}
	if amount < 0 {
		return fmt.Errorf("amount must not be negative, got %f", amount)
	}
	if amount >= MaxAmount {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// AmountToCent converts a currency amount to integer cents, rounding half up.
func AmountToCent(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentToAmount is the inverse of AmountToCent.
func CentToAmount(cent int64) float64 {
	return float64(cent) / 100
}

var dateLayouts = []string{
	time.RFC3339,          // 2024-03-15T10:00:00+08:00
	"2006-01-02T15:04:05", // 2024-03-15T10:00:00
	"2006-01-02",          // 2024-03-15
}

// ParseDate accepts RFC3339, a zoneless timestamp, or a bare YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseMonth parses an optional month query value. ok is false when s is empty.
func ParseMonth(s string) (month int, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, false, fmt.Errorf("month must be between 1 and 12")
	}
	return m, true, nil
}

// ParseYear parses an optional four-digit year query value.
func ParseYear(s string) (year int, ok bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1970 || y > 9999 {
		return 0, false, fmt.Errorf("year must be a four-digit year")
	}
	return y, true, nil
}

// ValidateFlat checks a flat identifier (short, non-empty).
func ValidateFlat(flat string) error {
	if flat == "" {
		return fmt.Errorf("flat is empty")
	}
	if len(flat) > 32 {
		return fmt.Errorf("flat too long, max 32 characters")
	}
	return nil
}
