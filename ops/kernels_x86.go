package ops

import (
	"time"
)

// Reference kernels for the x86-64 family.

const (
	tileRows  = 16
	tileBytes = 64
)

// amxS8S32 emulates TDPBSSD on a 16x16 int32 accumulator tile with two
// 16x64 int8 source tiles.
func amxS8S32(steps uint64) Result {
	var a, b [tileRows * tileBytes]int8
	for i := range a {
		a[i] = int8(i%7 - 2)
		b[i] = int8(i%5 - 1)
	}
	var c [tileRows * tileRows]int32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for m := 0; m < tileRows; m++ {
			row := a[m*tileBytes : (m+1)*tileBytes]
			for n := 0; n < tileRows; n++ {
				var acc int32
				for k := 0; k < tileBytes/4; k++ {
					brow := b[k*tileBytes+4*n : k*tileBytes+4*n+4]
					acc += int32(row[4*k])*int32(brow[0]) +
						int32(row[4*k+1])*int32(brow[1]) +
						int32(row[4*k+2])*int32(brow[2]) +
						int32(row[4*k+3])*int32(brow[3])
				}
				c[m*tileRows+n] += acc
			}
		}
	}
	return result(start, steps, (64+64)*tileRows*tileRows, sumInt32(c[:]))
}

// amxBF16F32 emulates TDPBF16PS on a 16x16 fp32 accumulator tile with two
// 16x32 bf16 source tiles.
func amxBF16F32(steps uint64) Result {
	const cols = tileBytes / 2
	var a, b [tileRows * cols]BFloat16
	for i := range a {
		a[i] = ToBFloat16(float32(i%4 + 1))
		b[i] = ToBFloat16(float32(i%3 + 1))
	}
	var c [tileRows * tileRows]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for m := 0; m < tileRows; m++ {
			for n := 0; n < tileRows; n++ {
				var acc float32
				for k := 0; k < cols/2; k++ {
					acc += a[m*cols+2*k].ToFloat32()*b[k*cols+2*n].ToFloat32() +
						a[m*cols+2*k+1].ToFloat32()*b[k*cols+2*n+1].ToFloat32()
				}
				c[m*tileRows+n] += acc
			}
		}
	}
	return result(start, steps, (32+32)*tileRows*tileRows, sumFloat32(c[:]))
}

// vnniS8S32 emulates one dword lane of VPDPBUSD: four u8*s8 products
// accumulated into an int32. The op count is one per product, as the
// native library reports it.
func vnniS8S32(steps uint64) Result {
	a := [4]int8{3, -2, 5, -1}
	b := [4]uint8{1, 4, 2, 7}
	var c int32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		c += int32(b[0])*int32(a[0]) +
			int32(b[1])*int32(a[1]) +
			int32(b[2])*int32(a[2]) +
			int32(b[3])*int32(a[3])
	}
	return result(start, steps, 4, float64(c))
}

// vnniS16S32 emulates one dword lane of VPDPWSSD: two s16*s16 products
// accumulated into an int32.
func vnniS16S32(steps uint64) Result {
	a := [2]int16{300, -7}
	b := [2]int16{-2, 11}
	var c int32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		c += int32(a[0])*int32(b[0]) + int32(a[1])*int32(b[1])
	}
	return result(start, steps, 2, float64(c))
}
