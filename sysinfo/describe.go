package sysinfo

import (
	"context"
	"fmt"
	"strings"

	ghost "github.com/shirou/gopsutil/v4/host"
	gmem "github.com/shirou/gopsutil/v4/mem"
)

// Description summarises the host for banners and session logs. Fields
// the system does not report stay empty.
type Description struct {
	Hostname       string
	Platform       string // distribution and version
	Kernel         string
	Virtualization string // e.g. "kvm guest"
	Model          string
	MemoryBytes    uint64
}

// Describe queries the host once. Lookup failures leave fields empty.
func Describe(ctx context.Context) Description {
	d := Description{Model: ModelName()}
	if info, err := ghost.InfoWithContext(ctx); err == nil {
		d.Hostname = info.Hostname
		d.Platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		d.Kernel = info.KernelVersion
		if info.VirtualizationSystem != "" {
			d.Virtualization = strings.TrimSpace(info.VirtualizationSystem + " " + info.VirtualizationRole)
		}
	}
	if vm, err := gmem.VirtualMemoryWithContext(ctx); err == nil {
		d.MemoryBytes = vm.Total
	}
	return d
}

func (d Description) String() string {
	var parts []string
	for _, s := range []string{d.Platform, d.Kernel, d.Virtualization} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if d.MemoryBytes > 0 {
		parts = append(parts, fmt.Sprintf("%.1fGiB", float64(d.MemoryBytes)/(1<<30)))
	}
	if d.Model != "" {
		parts = append(parts, d.Model)
	}

	name := d.Hostname
	if name == "" {
		name = "unknown"
	}
	if len(parts) == 0 {
		return name
	}
	return name + " (" + strings.Join(parts, ", ") + ")"
}
