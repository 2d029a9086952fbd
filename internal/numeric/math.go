// Package numeric holds small numeric helpers shared across the design
// kernel: bound clamping, integer helpers, and fast cents/ratio conversions.
package numeric

import (
	"math"

	approx "github.com/cwbudde/algo-approx"
)

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

const ln2 = 0.69314718055994530942

// pow2Approx computes 2^x via algo-approx's fast exponential, evaluated in
// float32 precision; there is no exact math.Exp2 path.
func pow2Approx(x float64) float64 {
	return float64(approx.FastExp(float32(x * ln2)))
}

// CentsToRatio converts a cents interval to a frequency ratio, 2^(cents/1200).
func CentsToRatio(cents float64) float64 {
	return pow2Approx(cents / 1200.0)
}

// RatioToCents converts a frequency ratio to a cents interval, the inverse
// of CentsToRatio. f2/f1 == 1 maps to 0 cents.
func RatioToCents(ratio float64) float64 {
	if ratio <= 0 {
		return math.NaN()
	}
	return 1200.0 * math.Log2(ratio)
}

// CalcCents returns the cents deviation of f from fTarget: 1200*log2(f/fTarget).
func CalcCents(fTarget, f float64) float64 {
	if fTarget <= 0 || f <= 0 {
		return math.NaN()
	}
	return RatioToCents(f / fTarget)
}
