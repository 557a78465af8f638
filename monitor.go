package vmperf

import (
	"fmt"
	"sync"
	"time"

	"github.com/LynnColeArt/vmperf/ops"
	"github.com/LynnColeArt/vmperf/sysinfo"
)

// PerfMonitor runs one worker per selected physical core and merges their
// reports. The pool is sized at construction and never changes.
//
// Measure calls must not overlap, and no call may follow Close.
type PerfMonitor struct {
	cores   []sysinfo.LogicalCore
	workers []*worker

	closeOnce sync.Once
	exited    sync.WaitGroup
}

// NewPerfMonitor selects the first coreOverride physical cores of p, or
// all of them when coreOverride is 0, and starts a pinned worker on each.
func NewPerfMonitor(p *Platform, coreOverride int) (*PerfMonitor, error) {
	physical := p.PhysicalCores()
	switch {
	case coreOverride < 0:
		return nil, NewConfigError("PerfMonitor", fmt.Sprintf("negative core override %d", coreOverride))
	case len(physical) == 0:
		return nil, NewConfigError("PerfMonitor", "no physical cores discovered")
	case coreOverride > len(physical):
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrTooManyCores, coreOverride, len(physical))
	}

	cores := physical
	if coreOverride > 0 {
		cores = physical[:coreOverride]
	}

	m := &PerfMonitor{cores: cores}
	ready := make(chan error, len(cores))
	for _, core := range cores {
		w := &worker{core: core, jobs: make(chan job, 1)}
		m.workers = append(m.workers, w)
		m.exited.Add(1)
		go func() {
			defer m.exited.Done()
			w.run(p, ready)
		}()
	}

	var setupErr error
	for range cores {
		if err := <-ready; err != nil && setupErr == nil {
			setupErr = err
		}
	}
	if setupErr != nil {
		m.Close()
		return nil, NewExternalError("PerfMonitor", "cycle clock unavailable", setupErr)
	}

	p.logf("monitor: %d workers on %v", len(cores), cores)
	return m, nil
}

// Cores returns the physical cores the workers are pinned to.
func (m *PerfMonitor) Cores() []sysinfo.LogicalCore {
	out := make([]sysinfo.LogicalCore, len(m.cores))
	copy(out, m.cores)
	return out
}

// Measure runs kind on every worker for duration of kernel time and
// returns the merged report. It returns once the slowest core finishes.
func (m *PerfMonitor) Measure(kind ops.Kind, steps uint64, duration time.Duration) *PerfReport {
	results := make([]*PerfReport, len(m.workers))

	var wg sync.WaitGroup
	wg.Add(len(m.workers))
	for i, w := range m.workers {
		w.jobs <- job{
			kind:     kind,
			steps:    steps,
			duration: duration.Seconds(),
			out:      &results[i],
			wg:       &wg,
		}
	}
	wg.Wait()

	merged := NewPerfReport(kind.String())
	merged.CoreDivisor = uint(len(m.workers))
	for _, r := range results {
		merged.Merge(r)
	}
	return merged
}

// Close stops the workers and waits for their threads to exit.
func (m *PerfMonitor) Close() {
	m.closeOnce.Do(func() {
		for _, w := range m.workers {
			close(w.jobs)
		}
	})
	m.exited.Wait()
}
