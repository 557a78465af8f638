package sysinfo

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	gcpu "github.com/shirou/gopsutil/v4/cpu"
)

// HostProvider reads topology from the running system through gopsutil.
type HostProvider struct {
	// SysRoot overrides /sys for package id lookups; empty means /sys.
	SysRoot string
}

// LogicalCount implements Provider.
func (h HostProvider) LogicalCount() (int, error) {
	return gcpu.Counts(true)
}

// LogicalCores implements Provider.
func (h HostProvider) LogicalCores() ([]LogicalCore, error) {
	infos, err := gcpu.InfoWithContext(context.Background())
	if err != nil {
		return nil, err
	}

	cores := make([]LogicalCore, 0, len(infos))
	for _, info := range infos {
		if info.CPU < 0 {
			continue
		}
		c := LogicalCore{Index: uint(info.CPU)}
		if id, ok := parseID(info.PhysicalID); ok {
			c.PackageID = id
		} else {
			c.PackageID = h.sysfsID(c.Index, "physical_package_id")
		}
		if id, ok := parseID(info.CoreID); ok {
			c.CoreID = id
		} else {
			c.CoreID = h.sysfsID(c.Index, "core_id")
		}
		c.ClusterID = h.sysfsID(c.Index, "cluster_id")
		cores = append(cores, c)
	}

	sort.Slice(cores, func(i, j int) bool { return cores[i].Index < cores[j].Index })
	assignSMT(cores)
	for i := range cores {
		if rank, ok := h.siblingRank(cores[i].Index); ok {
			cores[i].SMTID = rank
		}
	}
	return cores, nil
}

// siblingRank is the position of cpu in its topology/thread_siblings_list.
// The list names the hardware threads of one physical core whatever the
// core_id numbering, so it takes precedence over assignSMT.
func (h HostProvider) siblingRank(cpu uint) (uint, bool) {
	data, err := os.ReadFile(h.topologyPath(cpu, "thread_siblings_list"))
	if err != nil {
		return 0, false
	}
	siblings, ok := parseCPUList(string(data))
	if !ok {
		return 0, false
	}
	for rank, c := range siblings {
		if c == cpu {
			return uint(rank), true
		}
	}
	return 0, false
}

// parseCPUList parses the kernel's cpulist format, e.g. "0-3,8,10-11",
// into ascending CPU numbers.
func parseCPUList(s string) ([]uint, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	var out []uint
	for _, part := range strings.Split(s, ",") {
		lo, hi, isRange := strings.Cut(part, "-")
		first, ok := parseID(lo)
		if !ok {
			return nil, false
		}
		last := first
		if isRange {
			if last, ok = parseID(hi); !ok || last < first {
				return nil, false
			}
		}
		for c := first; c <= last; c++ {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true
}

// sysfsID reads /sys/devices/system/cpu/cpuN/topology/<name>, 0 when absent.
func (h HostProvider) sysfsID(cpu uint, name string) uint {
	data, err := os.ReadFile(h.topologyPath(cpu, name))
	if err != nil {
		return 0
	}
	id, _ := parseID(string(data))
	return id
}

func (h HostProvider) topologyPath(cpu uint, name string) string {
	root := h.SysRoot
	if root == "" {
		root = "/sys"
	}
	return fmt.Sprintf("%s/devices/system/cpu/cpu%d/topology/%s", root, cpu, name)
}

func parseID(s string) (uint, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return uint(v), true
}

// NominalHz returns the highest clock gopsutil reports for the host, or 0.
func NominalHz() float64 {
	infos, err := gcpu.Info()
	if err != nil {
		return 0
	}
	var mhz float64
	for _, info := range infos {
		if info.Mhz > mhz {
			mhz = info.Mhz
		}
	}
	return mhz * 1e6
}

// ModelName returns the CPU model string, or "unknown".
func ModelName() string {
	infos, err := gcpu.Info()
	if err != nil || len(infos) == 0 || infos[0].ModelName == "" {
		return "unknown"
	}
	return infos[0].ModelName
}
