package vmperf

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/LynnColeArt/vmperf/ops"
	"github.com/LynnColeArt/vmperf/sysinfo"
)

// fakeSource reports a fixed kernel time and op count per call.
type fakeSource struct {
	kinds      []ops.Kind
	ns         int64
	opsPerStep uint64
	calls      atomic.Int64
}

func (s *fakeSource) Supported() []ops.Kind { return s.kinds }

func (s *fakeSource) Measure(k ops.Kind, steps uint64) ops.Result {
	s.calls.Add(1)
	return ops.Result{ElapsedNanoseconds: s.ns, Ops: steps * s.opsPerStep}
}

// fakeClock advances 1µs and 3000 cycles per reading, i.e. 3 GHz.
type fakeClock struct {
	now    int64
	cycles uint64
	closed bool
}

func (c *fakeClock) Now() sysinfo.CPUTime {
	c.now += 1000
	c.cycles += 3000
	return sysinfo.CPUTime{Timestamp: c.now, Cycles: c.cycles}
}

func (c *fakeClock) Close() error {
	c.closed = true
	return nil
}

// fakeThreads records placement requests.
type fakeThreads struct {
	mu         sync.Mutex
	pinned     []uint
	priorities int
	fail       bool
}

func (t *fakeThreads) SetAffinity(cpu uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return sysinfo.ErrThreadControl
	}
	t.pinned = append(t.pinned, cpu)
	return nil
}

func (t *fakeThreads) SetPriority() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return sysinfo.ErrThreadControl
	}
	t.priorities++
	return nil
}

func (t *fakeThreads) pinnedSet() map[uint]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[uint]bool)
	for _, cpu := range t.pinned {
		out[cpu] = true
	}
	return out
}

// smtCores lays out physical cores with smt threads each, numbered the
// way Linux does: all primary threads first.
func smtCores(physical, smt int) []sysinfo.LogicalCore {
	var cores []sysinfo.LogicalCore
	for s := 0; s < smt; s++ {
		for c := 0; c < physical; c++ {
			cores = append(cores, sysinfo.LogicalCore{
				Index:  uint(s*physical + c),
				CoreID: uint(c),
				SMTID:  uint(s),
			})
		}
	}
	return cores
}

func testPlatform(physical, smt int, src *fakeSource, threads *fakeThreads) *Platform {
	return &Platform{
		Family:  ops.FamilyARM,
		Source:  src,
		Cores:   smtCores(physical, smt),
		Threads: threads,
		Clocks: func() (sysinfo.CycleClock, error) {
			return &fakeClock{}, nil
		},
	}
}

var errNoClock = errors.New("no clock")

// backwardClock reports a cycle count that goes down between readings.
type backwardClock struct{ n int64 }

func (c *backwardClock) Now() sysinfo.CPUTime {
	c.n++
	return sysinfo.CPUTime{Timestamp: c.n * 1000, Cycles: uint64(1000 - c.n)}
}

func (c *backwardClock) Close() error { return nil }
