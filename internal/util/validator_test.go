package util

import (
	"math"
	"testing"
	"time"
)

func TestValidateAmount_Valid(t *testing.T) {
	testCases := []float64{0, 0.01, 500, 9999999.99}

	for _, amount := range testCases {
		if err := ValidateAmount(amount); err != nil {
			t.Errorf("ValidateAmount(%f) error = %v, want nil", amount, err)
		}
	}
}

func TestValidateAmount_Invalid(t *testing.T) {
	testCases := []float64{-0.01, -100, MaxAmount, math.NaN(), math.Inf(1)}

	for _, amount := range testCases {
		if err := ValidateAmount(amount); err == nil {
			t.Errorf("ValidateAmount(%f) error = nil, want error", amount)
		}
	}
}

func TestAmountCentRoundTrip(t *testing.T) {
	if got := AmountToCent(12.34); got != 1234 {
		t.Errorf("AmountToCent(12.34) = %d, want 1234", got)
	}
	if got := AmountToCent(0.005); got != 1 {
		t.Errorf("AmountToCent(0.005) = %d, want 1", got)
	}
	if got := CentToAmount(80000); got != 800 {
		t.Errorf("CentToAmount(80000) = %f, want 800", got)
	}
}

func TestParseDate_Valid(t *testing.T) {
	testCases := []struct {
		in    string
		month time.Month
		year  int
	}{
		{"2024-03-15", time.March, 2024},
		{"2024-12-31T23:00:00", time.December, 2024},
		{"2025-01-01T00:30:00+05:00", time.January, 2025},
	}

	for _, tc := range testCases {
		d, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", tc.in, err)
		}
		if d.Month() != tc.month || d.Year() != tc.year {
			t.Errorf("ParseDate(%q) = %v, want %v %d", tc.in, d, tc.month, tc.year)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, in := range testCases {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", in)
		}
	}
}

func TestParseMonthYear(t *testing.T) {
	if _, ok, err := ParseMonth(""); ok || err != nil {
		t.Errorf("ParseMonth(\"\") = ok %v err %v, want absent", ok, err)
	}
	if m, ok, err := ParseMonth("7"); !ok || err != nil || m != 7 {
		t.Errorf("ParseMonth(\"7\") = %d %v %v", m, ok, err)
	}
	for _, bad := range []string{"0", "13", "abc"} {
		if _, _, err := ParseMonth(bad); err == nil {
			t.Errorf("ParseMonth(%q) error = nil, want error", bad)
		}
	}

	if y, ok, err := ParseYear("2024"); !ok || err != nil || y != 2024 {
		t.Errorf("ParseYear(\"2024\") = %d %v %v", y, ok, err)
	}
	for _, bad := range []string{"24", "20245", "year"} {
		if _, _, err := ParseYear(bad); err == nil {
			t.Errorf("ParseYear(%q) error = nil, want error", bad)
		}
	}
}

func TestValidateFlat(t *testing.T) {
	if err := ValidateFlat("B"); err != nil {
		t.Errorf("ValidateFlat(\"B\") error = %v", err)
	}
	if err := ValidateFlat(""); err == nil {
		t.Error("ValidateFlat(\"\") error = nil, want error")
	}
	if err := ValidateFlat("this-flat-identifier-is-far-too-long"); err == nil {
		t.Error("ValidateFlat() with long string error = nil, want error")
	}
}
