package vmperf

import (
	"runtime"
	"sync"

	"github.com/LynnColeArt/vmperf/ops"
	"github.com/LynnColeArt/vmperf/sysinfo"
)

// job is one measurement round handed to a worker. The worker writes its
// report through out and signals wg.
type job struct {
	kind     ops.Kind
	steps    uint64
	duration float64 // seconds
	out      **PerfReport
	wg       *sync.WaitGroup
}

// worker owns one OS thread pinned to one physical core for the lifetime
// of its monitor.
type worker struct {
	core sysinfo.LogicalCore
	jobs chan job
}

// run locks the goroutine to its thread, places the thread, opens the
// thread's clock and then serves jobs until the channel closes. ready
// receives the setup result exactly once.
func (w *worker) run(p *Platform, ready chan<- error) {
	// Never unlocked: the pinned, reprioritised thread exits with the
	// goroutine instead of going back to the scheduler.
	runtime.LockOSThread()

	if err := p.Threads.SetAffinity(w.core.Index); err != nil {
		p.logf("warning: worker on %v runs unpinned: %v", w.core, err)
	}
	if err := p.Threads.SetPriority(); err != nil {
		p.logf("warning: worker on %v keeps default priority: %v", w.core, err)
	}

	clock, err := p.Clocks()
	if err != nil {
		ready <- err
		return
	}
	defer clock.Close()
	ready <- nil

	for j := range w.jobs {
		*j.out = sampleLoop(p.Source, clock, j.kind, j.steps, j.duration)
		j.wg.Done()
	}
}

// sampleLoop measures kind until the kernel time accumulated in the
// report reaches duration. The check follows the first sample, so a zero
// duration still measures once.
func sampleLoop(source SampleSource, clock sysinfo.CycleClock, kind ops.Kind, steps uint64, duration float64) *PerfReport {
	report := NewPerfReport(kind.String())
	for {
		start := clock.Now()
		res := source.Measure(kind, steps)
		end := clock.Now()

		var freq float64
		elapsed := float64(end.Timestamp-start.Timestamp) / 1e9
		if elapsed > 0 && end.Cycles >= start.Cycles {
			freq = float64(end.Cycles-start.Cycles) / elapsed
		}

		report.Update(float64(res.ElapsedNanoseconds)/1e9, float64(res.Ops), freq, 1)
		if report.ElapsedTime >= duration {
			return report
		}
	}
}
