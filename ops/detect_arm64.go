//go:build arm64

package ops

import (
	gcpu "github.com/shirou/gopsutil/v4/cpu"
	"golang.org/x/sys/cpu"
)

// detectFeatures reads HWCAP bits through x/sys/cpu. BF16 is an AT_HWCAP2
// bit x/sys/cpu does not expose, so it comes from the /proc/cpuinfo
// Features line instead.
func detectFeatures() Features {
	f := Features{
		ASIMD:    cpu.ARM64.HasASIMD,
		ASIMDHP:  cpu.ARM64.HasASIMDHP && cpu.ARM64.HasFPHP,
		ASIMDDP:  cpu.ARM64.HasASIMDDP,
		ASIMDFHM: cpu.ARM64.HasASIMDFHM,
		I8MM:     cpu.ARM64.HasI8MM,
	}
	if info, err := gcpu.Info(); err == nil && len(info) > 0 {
		f.BF16 = hasFlag(info[0].Flags, "bf16")
		f.I8MM = f.I8MM || hasFlag(info[0].Flags, "i8mm")
	}
	return f
}
