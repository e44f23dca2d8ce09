// Package money isolates the floating-point amount handling used across the
// ledgers. Historical documents may carry amounts as JSON numbers, numeric
// strings, null, or garbage; everything non-numeric decodes to 0 so that the
// settlement engine never fails on malformed data. Keeping the coercion here
// means a later fixed-point representation only touches this package.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value. It decodes leniently: JSON numbers and numeric
// strings parse normally, anything else (null, empty, non-numeric) becomes 0.
type Amount float64

// UnmarshalJSON implements lenient decoding for persisted amounts.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(sanitize(f))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(sanitize(f))
		return nil
	}

	*a = 0
	return nil
}

// MarshalJSON writes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Float returns the amount as a float64, mapping NaN/Inf to 0.
func (a Amount) Float() float64 {
	return sanitize(float64(a))
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round2 rounds to two decimal places. Display-only; the engine keeps raw
// floats to stay byte-for-byte consistent across recomputations.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
