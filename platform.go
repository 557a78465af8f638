package vmperf

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/LynnColeArt/vmperf/ops"
	"github.com/LynnColeArt/vmperf/sysinfo"
)

// SampleSource measures operation kinds. Measure must be safe to call
// concurrently from independent threads.
type SampleSource interface {
	// Supported lists the runnable kinds in hardware order.
	Supported() []ops.Kind

	// Measure runs kind for steps iterations.
	Measure(kind ops.Kind, steps uint64) ops.Result
}

// Platform is the host context built once at startup and shared by the
// monitor and the driver. Its fields are not modified after construction.
type Platform struct {
	Family   ops.Family
	Features ops.Features
	Source   SampleSource

	// Cores lists every hardware thread in OS order.
	Cores []sysinfo.LogicalCore

	Threads sysinfo.ThreadControl
	Clocks  sysinfo.ClockFactory
	Log     *log.Logger
}

// NewHostPlatform probes the running machine: operation family, kernel
// capabilities, topology, thread control and cycle clocks. logger receives
// warnings; nil discards them.
func NewHostPlatform(logger *log.Logger) (*Platform, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	family, err := ops.HostFamily()
	if err != nil {
		return nil, NewCapabilityError("Platform", "unsupported architecture", err)
	}
	features := ops.HostFeatures()
	table, err := ops.NewTable(family, features)
	if err != nil {
		return nil, NewCapabilityError("Platform", "incomplete kernel table", err)
	}

	cores, err := sysinfo.Discover(sysinfo.HostProvider{})
	if err != nil {
		return nil, NewExternalError("Platform", "topology discovery failed", err)
	}

	clocks := sysinfo.HostClocks(time.Now(), clockFallbackWarning(logger))

	return &Platform{
		Family:   family,
		Features: features,
		Source:   table,
		Cores:    cores,
		Threads:  sysinfo.HostThreads{},
		Clocks:   clocks,
		Log:      logger,
	}, nil
}

// clockFallbackWarning logs the first clock fallback only; every worker
// thread hits the same one.
func clockFallbackWarning(logger *log.Logger) func(error) {
	var once sync.Once
	return func(err error) {
		once.Do(func() {
			if errors.Is(err, sysinfo.ErrNoNominalHz) {
				logger.Printf("warning: %v; CpuFreq will read 0", err)
				return
			}
			logger.Printf("warning: %v; frequency is derived from the nominal clock", err)
		})
	}
}

// PhysicalCores returns one representative hardware thread per physical core.
func (p *Platform) PhysicalCores() []sysinfo.LogicalCore {
	return sysinfo.PhysicalCores(p.Cores)
}

func (p *Platform) logf(format string, args ...interface{}) {
	if p.Log != nil {
		p.Log.Printf(format, args...)
	}
}
