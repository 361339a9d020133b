// Package numeric holds the arithmetic primitives every metric is computed
// through. None of them return NaN or ±Inf, whatever they are given.
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SafeDivide returns numerator/denominator, or fallback when the denominator
// is zero or either operand is not finite.
func SafeDivide(numerator, denominator, fallback float64) float64 {
	if denominator == 0 || !Finite(numerator) || !Finite(denominator) {
		return fallback
	}
	return numerator / denominator
}

// Clamp bounds value to [min, max]. Non-finite input returns min.
func Clamp(value, min, max float64) float64 {
	if !Finite(value) {
		return min
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Round rounds half away from zero to the given number of decimals.
// Non-finite input returns 0.
func Round(value float64, decimals int) float64 {
	if !Finite(value) {
		return 0
	}
	scale := math.Pow(10, float64(decimals))
	out := math.Round(value*scale) / scale
	if !Finite(out) {
		return 0
	}
	// Normalise -0 so JSON output never shows "-0".
	if out == 0 {
		return 0
	}
	return out
}

// Round2 is Round(value, 2), the default precision for ratios and hours.
func Round2(value float64) float64 {
	return Round(value, 2)
}

// NonNegative returns max(0, value). Non-finite input returns 0.
func NonNegative(value float64) float64 {
	if !Finite(value) || value < 0 {
		return 0
	}
	return value
}

// Coerce converts a loosely typed value (JSON number, numeric string, Go
// number) into a finite float64. Anything unparseable becomes 0.
func Coerce(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if !Finite(f) {
		return 0
	}
	return f
}

// Sum adds values, skipping non-finite ones.
func Sum(values ...float64) float64 {
	var total float64
	for _, v := range values {
		if Finite(v) {
			total += v
		}
	}
	return total
}

// FormatMoney renders v rounded to whole units as $1,234, or -$1,234 when
// negative.
func FormatMoney(v float64) string {
	n := int64(math.Round(NonNegative(math.Abs(v))))
	sign := ""
	if v < 0 && n != 0 {
		sign = "-"
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + "$" + s
}
