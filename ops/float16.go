package ops

import (
	"math"
)

// Float16 represents an IEEE 754 half precision number
type Float16 uint16

// Float16 conversion constants
const (
	float16SignMask     = 0x8000
	float16ExponentMask = 0x7C00
	float16MantissaMask = 0x03FF
	float16ExponentBias = 15
	float16MantissaBits = 10
)

// ToFloat32 converts Float16 to float32
func (f Float16) ToFloat32() float32 {
	sign := uint32(f&float16SignMask) << 16
	exponent := uint32(f&float16ExponentMask) >> float16MantissaBits
	mantissa := uint32(f & float16MantissaMask)

	switch exponent {
	case 0:
		if mantissa == 0 {
			return math.Float32frombits(sign)
		}
		// subnormal: value is mantissa * 2^-24
		v := float32(mantissa) * (1.0 / (1 << 24))
		if sign != 0 {
			v = -v
		}
		return v
	case 0x1F:
		if mantissa == 0 {
			return math.Float32frombits(sign | 0x7F800000)
		}
		return math.Float32frombits(sign | 0x7FC00000 | (mantissa << 13))
	}
	return math.Float32frombits(sign | ((exponent + 127 - float16ExponentBias) << 23) | (mantissa << 13))
}

// ToFloat16 converts float32 to Float16, truncating the mantissa.
// Values below the smallest normal flush to signed zero.
func ToFloat16(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := (bits >> 16) & float16SignMask
	exponent := (bits >> 23) & 0xFF
	mantissa := bits & 0x7FFFFF

	if exponent == 0xFF {
		if mantissa == 0 {
			return Float16(sign | float16ExponentMask)
		}
		return Float16(sign | float16ExponentMask | 0x200 | (mantissa >> 13))
	}

	exp := int(exponent) - 127 + float16ExponentBias
	if exp <= 0 {
		return Float16(sign)
	} else if exp >= 0x1F {
		return Float16(sign | float16ExponentMask)
	}
	return Float16(uint16(sign) | (uint16(exp) << float16MantissaBits) | uint16(mantissa>>13))
}

func toFloat16s(vals ...float32) []Float16 {
	out := make([]Float16, len(vals))
	for i, v := range vals {
		out[i] = ToFloat16(v)
	}
	return out
}
