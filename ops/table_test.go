package ops

import (
	"errors"
	"testing"
)

func allFeatures() Features {
	return Features{
		ASIMD: true, ASIMDHP: true, ASIMDDP: true, ASIMDFHM: true, I8MM: true, BF16: true,
		AMXTile: true, AMXInt8: true, AMXBF16: true, AVX512VNNI: true,
	}
}

func TestNewTableFiltersBySupport(t *testing.T) {
	features := Features{ASIMD: true, ASIMDDP: true}
	table, err := NewTable(FamilyARM, features)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	want := []Kind{MLA_F32_F32, MLA_S8_S16, DOT_S8_S32, FMA_F32_F32}
	got := table.Supported()
	if len(got) != len(want) {
		t.Fatalf("Supported() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Supported()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if table.Family() != FamilyARM {
		t.Errorf("Family() = %v", table.Family())
	}
}

func TestNewTableRejectsGaps(t *testing.T) {
	kernels := make(map[Kind]Kernel)
	for k, fn := range referenceKernels {
		kernels[k] = fn
	}
	delete(kernels, VNNI_S16_S32)

	// the gap is fatal even though the kind would be filtered out
	_, err := newTable(FamilyX86, Features{}, kernels)
	if !errors.Is(err, ErrMissingKernel) {
		t.Fatalf("expected ErrMissingKernel, got %v", err)
	}

	if _, err := NewTable(FamilyUnknown, allFeatures()); !errors.Is(err, ErrUnsupportedArch) {
		t.Fatalf("expected ErrUnsupportedArch, got %v", err)
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	table, err := NewTable(FamilyX86, allFeatures())
	if err != nil {
		t.Fatal(err)
	}
	s := table.Supported()
	s[0] = VNNI_S16_S32
	if table.Supported()[0] != AMX_S8_S32 {
		t.Error("Supported() exposed internal slice")
	}
}

func TestMeasureUnsupportedPanics(t *testing.T) {
	table, err := NewTable(FamilyX86, Features{AVX512VNNI: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	table.Measure(AMX_S8_S32, 1)
}

func TestKernelOpAccounting(t *testing.T) {
	perStep := map[Kind]uint64{
		MMLA_S8_S32:   32,
		MMLA_BF16_F32: 16,
		MLA_F32_F32:   8,
		MLA_BF16_F32:  16,
		MLA_S8_S16:    32,
		DOT_BF16_F32:  16,
		DOT_S8_S32:    32,
		FMA_F32_F32:   8,
		FMA_F16_F16:   16,
		FMA_F16_F32:   16,
		AMX_S8_S32:    128 * 256,
		AMX_BF16_F32:  64 * 256,
		VNNI_S8_S32:   4,
		VNNI_S16_S32:  2,
	}

	for _, f := range []Family{FamilyARM, FamilyX86} {
		table, err := NewTable(f, allFeatures())
		if err != nil {
			t.Fatal(err)
		}
		for _, k := range table.Supported() {
			t.Run(k.String(), func(t *testing.T) {
				const steps = 7
				res := table.Measure(k, steps)
				if res.Ops != steps*perStep[k] {
					t.Errorf("Ops = %d, want %d", res.Ops, steps*perStep[k])
				}
				if res.ElapsedNanoseconds < 0 {
					t.Errorf("negative elapsed time %d", res.ElapsedNanoseconds)
				}
				if res.Checksum == 0 {
					t.Error("accumulator never changed")
				}
			})
		}
	}
}

func TestKernelSemantics(t *testing.T) {
	// one SDOT step on {1,2,3,4} x {1,2,3,4} gives 30 per lane
	if got := dotS8S32(1).Checksum; got != 4*30 {
		t.Errorf("dotS8S32 checksum = %v, want 120", got)
	}
	// one SMMLA step: each output is sum((1..8)^2) = 204
	if got := mmlaS8S32(1).Checksum; got != 4*204 {
		t.Errorf("mmlaS8S32 checksum = %v, want 816", got)
	}
	// FMLA on {1,2,3,4}^2 twice
	if got := fmaF32F32(2).Checksum; got != 2*30 {
		t.Errorf("fmaF32F32 checksum = %v, want 60", got)
	}
	// one VPDPBUSD lane: 1*3 + 4*-2 + 2*5 + 7*-1 = -2, four products per step
	if res := vnniS8S32(10); res.Ops != 40 || res.Checksum != -20 {
		t.Errorf("vnniS8S32(10) = %+v, want 40 ops, checksum -20", res)
	}
	// one VPDPWSSD lane: 300*-2 + -7*11 = -677, two products per step
	if res := vnniS16S32(10); res.Ops != 20 || res.Checksum != -6770 {
		t.Errorf("vnniS16S32(10) = %+v, want 20 ops, checksum -6770", res)
	}
	// zero steps retire nothing
	if res := vnniS8S32(0); res.Ops != 0 || res.Checksum != 0 {
		t.Errorf("vnniS8S32(0) = %+v", res)
	}
}

func TestFeaturesSupports(t *testing.T) {
	f := Features{ASIMDHP: true}
	if !f.Supports(FMA_F16_F16) {
		t.Error("FMA_F16_F16 needs only asimdhp")
	}
	if f.Supports(FMA_F16_F32) {
		t.Error("FMA_F16_F32 also needs asimdfhm")
	}
	if (Features{AMXInt8: true}).Supports(AMX_S8_S32) {
		t.Error("AMX kinds need tile support")
	}
	if (Features{}).String() != "none" {
		t.Errorf("empty features = %q", Features{}.String())
	}
	if got := (Features{I8MM: true, BF16: true}).String(); got != "i8mm bf16" {
		t.Errorf("String() = %q", got)
	}
}
