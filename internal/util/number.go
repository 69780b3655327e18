package util

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric request field that accepts both 3 and "3". Form
// inputs post their values as strings, so both shapes mean the same thing.
// The text is kept as sent; conversion happens in Float64 and Int.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	b = []byte(strings.TrimSpace(string(b)))
	if len(b) == 0 {
		return fmt.Errorf("empty number")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*n = Number(b)
	default:
		return fmt.Errorf("expected a number or numeric string, got %s", b)
	}
	return nil
}

// Blank reports whether the field was sent as an empty string.
func (n Number) Blank() bool {
	return n == ""
}

func (n Number) Float64() (float64, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", string(n))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", string(n))
	}
	return f, nil
}

// Int accepts whole numbers only; "3" and 3.0 pass, "3.5" does not.
func (n Number) Int() (int, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%q is not a whole number", string(n))
	}
	return int(f), nil
}
