package ops

import (
	"math"
)

// BFloat16 represents a 16-bit brain floating point number
// Format: 1 sign bit, 8 exponent bits, 7 mantissa bits
type BFloat16 uint16

// ToBFloat16 converts float32 to BFloat16 with round to nearest even.
func ToBFloat16(f float32) BFloat16 {
	bits := math.Float32bits(f)
	if f != f {
		// keep NaN quiet, rounding could carry it into Inf
		return BFloat16(bits>>16 | 0x0040)
	}
	rounding := (bits >> 16) & 1
	bits += 0x7FFF + rounding
	return BFloat16(bits >> 16)
}

// ToFloat32 converts BFloat16 to float32
func (b BFloat16) ToFloat32() float32 {
	return math.Float32frombits(uint32(b) << 16)
}

func toBFloat16s(vals ...float32) []BFloat16 {
	out := make([]BFloat16, len(vals))
	for i, v := range vals {
		out[i] = ToBFloat16(v)
	}
	return out
}
