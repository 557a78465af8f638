// Package ops names the measurable compute primitives and provides the
// kernel table used to measure them.
package ops

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Family selects which instruction set's operation kinds are active.
// Exactly one family is active per process.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyARM            // AArch64 NEON / BF16 / I8MM
	FamilyX86            // x86-64 AMX / AVX512-VNNI
)

func (f Family) String() string {
	switch f {
	case FamilyARM:
		return "arm64"
	case FamilyX86:
		return "x86_64"
	default:
		return "unknown"
	}
}

// ErrUnsupportedArch is returned when the build target has no operation family.
var ErrUnsupportedArch = errors.New("ops: no operation family for this architecture")

// HostFamily returns the family matching the build target.
func HostFamily() (Family, error) {
	return familyForArch(runtime.GOARCH)
}

func familyForArch(goarch string) (Family, error) {
	switch goarch {
	case "arm64":
		return FamilyARM, nil
	case "amd64":
		return FamilyX86, nil
	default:
		return FamilyUnknown, fmt.Errorf("%w: %s", ErrUnsupportedArch, goarch)
	}
}

// Kind identifies one measurable primitive. Kinds carry no payload.
type Kind int

// ARM kinds.
const (
	// MATRIX MULTIPLY ACCUMULATE
	MMLA_S8_S32   Kind = iota + 1 // SMMLA (input 16, weight 16, output 4)
	MMLA_BF16_F32                 // BFMMLA (input 8, weight 8, output 4)

	// MULTIPLY ACCUMULATE
	MLA_F32_F32  // 4 x MUL, 4 x ADD
	MLA_BF16_F32 // BFMLALB (input 8, weight 8, output 4)
	MLA_S8_S16   // SMLAL (input 8, weight 8, output 8)

	// DOT PRODUCT
	DOT_BF16_F32 // BFDOT (input 8, weight 8, output 4)
	DOT_S8_S32   // SDOT (input 16, weight 16, output 4)

	// FUSED MULTIPLY ACCUMULATE
	FMA_F32_F32 // FMLA (input 4, weight 4, output 4)
	FMA_F16_F16 // FMLA (input 8, weight 8, output 8)
	FMA_F16_F32 // FMLAL (input 8, weight 8, output 4)
)

// x86 kinds.
const (
	// ADVANCED MATRIX EXTENSION
	AMX_S8_S32   Kind = iota + 101 // TDPBSSD, 16x16 int32 tile
	AMX_BF16_F32                   // TDPBF16PS, 16x16 fp32 tile

	// VECTOR NEURAL NETWORK
	VNNI_S8_S32  // VPDPBUSD, one dword lane
	VNNI_S16_S32 // VPDPWSSD, one dword lane
)

var kindNames = map[Kind]string{
	MMLA_S8_S32:   "MMLA_S8_S32",
	MMLA_BF16_F32: "MMLA_BF16_F32",
	MLA_F32_F32:   "MLA_F32_F32",
	MLA_BF16_F32:  "MLA_BF16_F32",
	MLA_S8_S16:    "MLA_S8_S16",
	DOT_BF16_F32:  "DOT_BF16_F32",
	DOT_S8_S32:    "DOT_S8_S32",
	FMA_F32_F32:   "FMA_F32_F32",
	FMA_F16_F16:   "FMA_F16_F16",
	FMA_F16_F32:   "FMA_F16_F32",
	AMX_S8_S32:    "AMX_S8_S32",
	AMX_BF16_F32:  "AMX_BF16_F32",
	VNNI_S8_S32:   "VNNI_S8_S32",
	VNNI_S16_S32:  "VNNI_S16_S32",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Family reports which family k belongs to.
func (k Kind) Family() Family {
	switch {
	case k >= MMLA_S8_S32 && k <= FMA_F16_F32:
		return FamilyARM
	case k >= AMX_S8_S32 && k <= VNNI_S16_S32:
		return FamilyX86
	default:
		return FamilyUnknown
	}
}

// CatalogFor returns every kind of family f in declaration order.
func CatalogFor(f Family) []Kind {
	switch f {
	case FamilyARM:
		return []Kind{
			MMLA_S8_S32, MMLA_BF16_F32,
			MLA_F32_F32, MLA_BF16_F32, MLA_S8_S16,
			DOT_BF16_F32, DOT_S8_S32,
			FMA_F32_F32, FMA_F16_F16, FMA_F16_F32,
		}
	case FamilyX86:
		return []Kind{AMX_S8_S32, AMX_BF16_F32, VNNI_S8_S32, VNNI_S16_S32}
	default:
		return nil
	}
}

// ParseKind resolves a kind name within family f. Matching ignores case.
func ParseKind(f Family, name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	for _, k := range CatalogFor(f) {
		if strings.EqualFold(k.String(), name) {
			return k, true
		}
	}
	return 0, false
}
