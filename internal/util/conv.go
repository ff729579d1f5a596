package util

import (
	"fmt"
	"math"
)

// Round2 rounds half away from zero to two decimal places. All percentage
// and mean fields in the statistics aggregate carry two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercent renders a two-decimal number the way the API exposes
// successRate/averageScore/accuracy ("100.00", "0.00").
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
