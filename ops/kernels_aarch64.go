package ops

import (
	"math"
	"time"
)

// Reference kernels for the AArch64 family. Each loop body reproduces one
// instruction's lane arithmetic; op counts follow the per-instruction
// accounting of the native library (mul + add per output).

var (
	s8Pattern16  = [16]int8{1, 2, 3, 4, 5, 6, 7, 8, 1, 2, 3, 4, 5, 6, 7, 8}
	s8Pattern8   = [8]int8{1, 2, 3, 4, 5, 6, 7, 8}
	s8Quad16     = [16]int8{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}
	f32Pattern4  = [4]float32{1, 2, 3, 4}
	halfPattern8 = []float32{1, 2, 3, 4, 1, 2, 3, 4}
)

// mmlaS8S32 emulates SMMLA: (2x8 int8) x (2x8 int8)^T accumulated into 2x2 int32.
func mmlaS8S32(steps uint64) Result {
	a, b := s8Pattern16, s8Pattern16
	var c [4]int32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				var acc int32
				for k := 0; k < 8; k++ {
					acc += int32(a[i*8+k]) * int32(b[j*8+k])
				}
				c[i*2+j] += acc
			}
		}
	}
	return result(start, steps, (4+4)*4, sumInt32(c[:]))
}

// mmlaBF16F32 emulates BFMMLA: (2x4 bf16) x (2x4 bf16)^T into 2x2 fp32.
func mmlaBF16F32(steps uint64) Result {
	a, b := toBFloat16s(halfPattern8...), toBFloat16s(halfPattern8...)
	var c [4]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				var acc float32
				for k := 0; k < 4; k++ {
					acc += a[i*4+k].ToFloat32() * b[j*4+k].ToFloat32()
				}
				c[i*2+j] += acc
			}
		}
	}
	return result(start, steps, (2+2)*4, sumFloat32(c[:]))
}

// mlaF32F32 emulates a non-fused multiply then add on four fp32 lanes.
func mlaF32F32(steps uint64) Result {
	a, b := f32Pattern4, f32Pattern4
	var c [4]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] = c[i] + float32(a[i]*b[i])
		}
	}
	return result(start, steps, (1+1)*4, sumFloat32(c[:]))
}

// mlaBF16F32 emulates BFMLALB: even bf16 lanes widened and accumulated into fp32.
func mlaBF16F32(steps uint64) Result {
	a, b := toBFloat16s(halfPattern8...), toBFloat16s(halfPattern8...)
	var c [4]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] = float32(math.FMA(float64(a[2*i].ToFloat32()), float64(b[2*i].ToFloat32()), float64(c[i])))
		}
	}
	return result(start, steps, (2+2)*4, sumFloat32(c[:]))
}

// mlaS8S16 emulates SMLAL: int8 lanes multiplied and accumulated into int16.
func mlaS8S16(steps uint64) Result {
	a, b := s8Pattern8, s8Pattern8
	var c [8]int16

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] += int16(a[i]) * int16(b[i])
		}
	}

	var sum float64
	for _, v := range c {
		sum += float64(v)
	}
	return result(start, steps, (4+4)*4, sum)
}

// dotBF16F32 emulates BFDOT: pairs of bf16 products summed into each fp32 lane.
func dotBF16F32(steps uint64) Result {
	a, b := toBFloat16s(halfPattern8...), toBFloat16s(halfPattern8...)
	var c [4]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] += a[2*i].ToFloat32()*b[2*i].ToFloat32() + a[2*i+1].ToFloat32()*b[2*i+1].ToFloat32()
		}
	}
	return result(start, steps, (2+2)*4, sumFloat32(c[:]))
}

// dotS8S32 emulates SDOT: four int8 products summed into each int32 lane.
func dotS8S32(steps uint64) Result {
	a, b := s8Quad16, s8Quad16
	var c [4]int32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] += int32(a[4*i])*int32(b[4*i]) +
				int32(a[4*i+1])*int32(b[4*i+1]) +
				int32(a[4*i+2])*int32(b[4*i+2]) +
				int32(a[4*i+3])*int32(b[4*i+3])
		}
	}
	return result(start, steps, (4+4)*4, sumInt32(c[:]))
}

// fmaF32F32 emulates FMLA on four fp32 lanes.
func fmaF32F32(steps uint64) Result {
	a, b := f32Pattern4, f32Pattern4
	var c [4]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] = float32(math.FMA(float64(a[i]), float64(b[i]), float64(c[i])))
		}
	}
	return result(start, steps, (1+1)*4, sumFloat32(c[:]))
}

// fmaF16F16 emulates half precision FMLA on eight fp16 lanes.
func fmaF16F16(steps uint64) Result {
	a, b := toFloat16s(halfPattern8...), toFloat16s(halfPattern8...)
	var c [8]Float16

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			v := math.FMA(float64(a[i].ToFloat32()), float64(b[i].ToFloat32()), float64(c[i].ToFloat32()))
			c[i] = ToFloat16(float32(v))
		}
	}

	var sum float64
	for _, v := range c {
		sum += float64(v.ToFloat32())
	}
	return result(start, steps, (1+1)*8, sum)
}

// fmaF16F32 emulates FMLAL (low half): fp16 lanes widened into fp32 accumulators.
func fmaF16F32(steps uint64) Result {
	a, b := toFloat16s(halfPattern8...), toFloat16s(halfPattern8...)
	var c [4]float32

	start := time.Now()
	for s := uint64(0); s < steps; s++ {
		for i := range c {
			c[i] = float32(math.FMA(float64(a[i].ToFloat32()), float64(b[i].ToFloat32()), float64(c[i])))
		}
	}
	return result(start, steps, (2+2)*4, sumFloat32(c[:]))
}

func sumInt32(v []int32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x)
	}
	return sum
}

func sumFloat32(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x)
	}
	return sum
}
