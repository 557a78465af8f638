package vmperf

import (
	"fmt"
	"math"
)

var unitPrefixes = [...]string{"", "K", "M", "G", "T", "P", "E", "Z"}

// FormatScaled renders num with the largest prefix that keeps the scaled
// magnitude below base, e.g. FormatScaled(2048, 1024, "Ops") is "2.0KOps".
// Magnitudes beyond Z fall through to Y.
func FormatScaled(num, base float64, suffix string) string {
	for _, unit := range unitPrefixes {
		if math.Abs(num) < base {
			return fmt.Sprintf("%3.1f%s%s", num, unit, suffix)
		}
		num /= base
	}
	return fmt.Sprintf("%.1fY%s", num, suffix)
}
