package ops

import "strings"

// Features is the subset of CPU capabilities the kernels are gated on.
type Features struct {
	// AArch64
	ASIMD    bool
	ASIMDHP  bool
	ASIMDDP  bool
	ASIMDFHM bool
	I8MM     bool
	BF16     bool

	// x86-64
	AMXTile    bool
	AMXInt8    bool
	AMXBF16    bool
	AVX512VNNI bool
}

// HostFeatures probes the running CPU.
func HostFeatures() Features {
	return detectFeatures()
}

// Supports is the capability probe for k.
func (f Features) Supports(k Kind) bool {
	switch k {
	case MMLA_S8_S32:
		return f.I8MM
	case MMLA_BF16_F32, MLA_BF16_F32:
		return f.BF16
	case MLA_F32_F32, MLA_S8_S16, FMA_F32_F32:
		return f.ASIMD
	case DOT_BF16_F32:
		return f.ASIMDDP && f.BF16
	case DOT_S8_S32:
		return f.ASIMDDP
	case FMA_F16_F16:
		return f.ASIMDHP
	case FMA_F16_F32:
		return f.ASIMDHP && f.ASIMDFHM
	case AMX_S8_S32:
		return f.AMXTile && f.AMXInt8
	case AMX_BF16_F32:
		return f.AMXTile && f.AMXBF16
	case VNNI_S8_S32, VNNI_S16_S32:
		return f.AVX512VNNI
	}
	return false
}

// String lists the detected features.
func (f Features) String() string {
	var names []string
	for _, ft := range []struct {
		name string
		ok   bool
	}{
		{"asimd", f.ASIMD},
		{"asimdhp", f.ASIMDHP},
		{"asimddp", f.ASIMDDP},
		{"asimdfhm", f.ASIMDFHM},
		{"i8mm", f.I8MM},
		{"bf16", f.BF16},
		{"amx_tile", f.AMXTile},
		{"amx_int8", f.AMXInt8},
		{"amx_bf16", f.AMXBF16},
		{"avx512_vnni", f.AVX512VNNI},
	} {
		if ft.ok {
			names = append(names, ft.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, " ")
}

func hasFlag(flags []string, name string) bool {
	for _, f := range flags {
		if f == name {
			return true
		}
	}
	return false
}
