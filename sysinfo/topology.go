// Package sysinfo describes the host the benchmarks run on: CPU topology,
// per-thread placement control and a cycle clock.
package sysinfo

import (
	"errors"
	"fmt"
)

// LogicalCore is the placement of one hardware thread within the
// socket/cluster/core/thread hierarchy. SMTID 0 marks the primary thread of
// a physical core.
type LogicalCore struct {
	Index     uint // OS CPU number
	PackageID uint
	ClusterID uint // 0 where the kernel reports no clusters
	CoreID    uint // may restart at 0 in every cluster
	SMTID     uint
}

func (c LogicalCore) String() string {
	return fmt.Sprintf("cpu%d(pkg %d, cluster %d, core %d, smt %d)",
		c.Index, c.PackageID, c.ClusterID, c.CoreID, c.SMTID)
}

// Provider is the system information source topology is built from.
type Provider interface {
	// LogicalCount is the OS logical CPU count.
	LogicalCount() (int, error)

	// LogicalCores lists hardware threads ordered by OS CPU number.
	LogicalCores() ([]LogicalCore, error)
}

// ErrShortTopology is returned when a provider lists fewer hardware threads
// than the OS reports.
var ErrShortTopology = errors.New("sysinfo: topology shorter than logical CPU count")

// Discover queries p once and returns one entry per hardware thread, sized
// to the OS logical CPU count.
func Discover(p Provider) ([]LogicalCore, error) {
	count, err := p.LogicalCount()
	if err != nil {
		return nil, fmt.Errorf("logical cpu count: %w", err)
	}
	cores, err := p.LogicalCores()
	if err != nil {
		return nil, fmt.Errorf("logical cores: %w", err)
	}
	if len(cores) < count {
		return nil, fmt.Errorf("%w: %d entries for %d cpus", ErrShortTopology, len(cores), count)
	}
	return cores[:count:count], nil
}

// PhysicalCores keeps the primary hardware thread of each physical core,
// preserving order.
func PhysicalCores(cores []LogicalCore) []LogicalCore {
	var out []LogicalCore
	for _, c := range cores {
		if c.SMTID == 0 {
			out = append(out, c)
		}
	}
	return out
}

// assignSMT numbers the hardware threads sharing a (package, cluster, core)
// triple in the order they appear.
func assignSMT(cores []LogicalCore) {
	type key struct{ pkg, cluster, core uint }
	next := make(map[key]uint)
	for i := range cores {
		k := key{cores[i].PackageID, cores[i].ClusterID, cores[i].CoreID}
		cores[i].SMTID = next[k]
		next[k]++
	}
}
