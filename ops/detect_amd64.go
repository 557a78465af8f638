//go:build amd64

package ops

import (
	"golang.org/x/sys/cpu"
)

// detectFeatures checks CPUID through x/sys/cpu. AMX additionally needs the
// kernel to grant the process tile data state.
func detectFeatures() Features {
	f := Features{
		AMXTile:    cpu.X86.HasAMXTile,
		AMXInt8:    cpu.X86.HasAMXInt8,
		AMXBF16:    cpu.X86.HasAMXBF16,
		AVX512VNNI: cpu.X86.HasAVX512VNNI,
	}
	if f.AMXTile {
		if err := requestTileData(); err != nil {
			f.AMXTile, f.AMXInt8, f.AMXBF16 = false, false, false
		}
	}
	return f
}
