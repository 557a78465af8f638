package ops

import (
	"errors"
	"fmt"
	"time"
)

// Result is what one kernel call reports: wall time spent in the
// instruction loop and the number of arithmetic operations it retired.
type Result struct {
	ElapsedNanoseconds int64
	Ops                uint64

	// Checksum folds the final accumulator so the loop stays observable.
	Checksum float64
}

// Kernel executes its primitive steps times and reports the result.
// Kernels keep all state on their own stack and may run concurrently.
type Kernel func(steps uint64) Result

// ErrMissingKernel is returned when a family member has no kernel.
var ErrMissingKernel = errors.New("ops: no kernel for kind")

var referenceKernels = map[Kind]Kernel{
	MMLA_S8_S32:   mmlaS8S32,
	MMLA_BF16_F32: mmlaBF16F32,
	MLA_F32_F32:   mlaF32F32,
	MLA_BF16_F32:  mlaBF16F32,
	MLA_S8_S16:    mlaS8S16,
	DOT_BF16_F32:  dotBF16F32,
	DOT_S8_S32:    dotS8S32,
	FMA_F32_F32:   fmaF32F32,
	FMA_F16_F16:   fmaF16F16,
	FMA_F16_F32:   fmaF16F32,

	AMX_S8_S32:   amxS8S32,
	AMX_BF16_F32: amxBF16F32,
	VNNI_S8_S32:  vnniS8S32,
	VNNI_S16_S32: vnniS16S32,
}

// Table maps the supported kinds of one family to their kernels. It is
// built once and never modified.
type Table struct {
	family    Family
	kernels   map[Kind]Kernel
	supported []Kind
}

// NewTable builds the kernel table for family f, keeping only the kinds
// features supports. Every member of the family must have a kernel, so a
// gap surfaces here rather than on first use.
func NewTable(f Family, features Features) (*Table, error) {
	return newTable(f, features, referenceKernels)
}

func newTable(f Family, features Features, kernels map[Kind]Kernel) (*Table, error) {
	catalog := CatalogFor(f)
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: family %v", ErrUnsupportedArch, f)
	}

	t := &Table{
		family:  f,
		kernels: make(map[Kind]Kernel, len(catalog)),
	}
	for _, k := range catalog {
		kernel, ok := kernels[k]
		if !ok || kernel == nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingKernel, k)
		}
		if !features.Supports(k) {
			continue
		}
		t.kernels[k] = kernel
		t.supported = append(t.supported, k)
	}
	return t, nil
}

// Family returns the active family.
func (t *Table) Family() Family { return t.family }

// Supported returns the runnable kinds in catalog order.
func (t *Table) Supported() []Kind {
	out := make([]Kind, len(t.supported))
	copy(out, t.supported)
	return out
}

// Measure runs the kernel for k. Asking for a kind outside Supported is a
// programming error.
func (t *Table) Measure(k Kind, steps uint64) Result {
	kernel, ok := t.kernels[k]
	if !ok {
		panic(fmt.Sprintf("ops: measure of unsupported kind %v", k))
	}
	return kernel(steps)
}

func result(start time.Time, steps, opsPerStep uint64, checksum float64) Result {
	return Result{
		ElapsedNanoseconds: time.Since(start).Nanoseconds(),
		Ops:                steps * opsPerStep,
		Checksum:           checksum,
	}
}
