package vmperf

import (
	"errors"
	"testing"
	"time"

	"github.com/LynnColeArt/vmperf/ops"
	"github.com/LynnColeArt/vmperf/sysinfo"
)

func TestMonitorCoreOverride(t *testing.T) {
	src := &fakeSource{kinds: []ops.Kind{ops.DOT_S8_S32}, ns: 2.5e8, opsPerStep: 32}
	threads := &fakeThreads{}
	p := testPlatform(8, 2, src, threads)

	m, err := NewPerfMonitor(p, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if got := len(m.Cores()); got != 2 {
		t.Fatalf("workers = %d, want 2", got)
	}
	pinned := threads.pinnedSet()
	if len(pinned) != 2 || !pinned[0] || !pinned[1] {
		t.Errorf("pinned %v, want cpus 0 and 1", pinned)
	}

	r := m.Measure(ops.DOT_S8_S32, 10, time.Second)
	if r.CoreDivisor != 2 {
		t.Errorf("CoreDivisor = %d, want 2", r.CoreDivisor)
	}
	if r.Name != "DOT_S8_S32" {
		t.Errorf("Name = %q", r.Name)
	}
	if r.SampleCount != 8 {
		t.Errorf("SampleCount = %d, want 4 per worker", r.SampleCount)
	}
	if r.ElapsedTime != 2 {
		t.Errorf("ElapsedTime = %g, want 2", r.ElapsedTime)
	}
	if got := len(r.CorePeaks()); got != 2 {
		t.Errorf("core peaks = %d, want 2", got)
	}
}

func TestMonitorAllPhysicalCores(t *testing.T) {
	src := &fakeSource{kinds: []ops.Kind{ops.FMA_F32_F32}, ns: 1e6, opsPerStep: 8}
	threads := &fakeThreads{}
	p := testPlatform(4, 2, src, threads)

	m, err := NewPerfMonitor(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	for _, c := range m.Cores() {
		if c.SMTID != 0 {
			t.Errorf("worker on secondary thread %v", c)
		}
	}
	if threads.priorities != 4 {
		t.Errorf("priority raised %d times, want 4", threads.priorities)
	}

	// Workers persist across rounds.
	for i := 0; i < 3; i++ {
		r := m.Measure(ops.FMA_F32_F32, 1, 0)
		if r.SampleCount != 4 {
			t.Errorf("round %d: SampleCount = %d, want one per worker", i, r.SampleCount)
		}
	}
	if len(threads.pinnedSet()) != 4 {
		t.Errorf("threads re-pinned: %v", threads.pinned)
	}
}

func TestMonitorPlacementFailureIsWarning(t *testing.T) {
	src := &fakeSource{kinds: []ops.Kind{ops.FMA_F32_F32}, ns: 1e6, opsPerStep: 8}
	p := testPlatform(2, 1, src, &fakeThreads{fail: true})

	m, err := NewPerfMonitor(p, 0)
	if err != nil {
		t.Fatalf("placement failure aborted startup: %v", err)
	}
	defer m.Close()
	if r := m.Measure(ops.FMA_F32_F32, 1, 0); r.SampleCount != 2 {
		t.Errorf("SampleCount = %d", r.SampleCount)
	}
}

func TestMonitorErrors(t *testing.T) {
	src := &fakeSource{kinds: []ops.Kind{ops.FMA_F32_F32}}

	p := testPlatform(8, 2, src, &fakeThreads{})
	if _, err := NewPerfMonitor(p, 9); !errors.Is(err, ErrTooManyCores) {
		t.Errorf("override 9 of 8: err = %v", err)
	}
	if _, err := NewPerfMonitor(p, -1); !IsConfigError(err) {
		t.Errorf("negative override: err = %v", err)
	}

	empty := testPlatform(0, 1, src, &fakeThreads{})
	if _, err := NewPerfMonitor(empty, 0); !IsConfigError(err) {
		t.Errorf("no cores: err = %v", err)
	}

	broken := testPlatform(2, 1, src, &fakeThreads{})
	broken.Clocks = func() (sysinfo.CycleClock, error) { return nil, errNoClock }
	_, err := NewPerfMonitor(broken, 0)
	if !IsExternalError(err) || !errors.Is(err, errNoClock) {
		t.Errorf("clock failure: err = %v", err)
	}
}

func TestMonitorCloseIdempotent(t *testing.T) {
	src := &fakeSource{kinds: []ops.Kind{ops.FMA_F32_F32}, ns: 1, opsPerStep: 1}
	m, err := NewPerfMonitor(testPlatform(2, 1, src, &fakeThreads{}), 0)
	if err != nil {
		t.Fatal(err)
	}
	m.Close()
	m.Close()
}
