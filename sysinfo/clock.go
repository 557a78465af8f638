package sysinfo

import (
	"errors"
	"fmt"
	"time"
)

// CPUTime pairs a monotonic timestamp with a cycle count. Two samples
// bracketing a measurement give its effective clock frequency.
type CPUTime struct {
	Timestamp int64 // nanoseconds since the clock's epoch
	Cycles    uint64
}

// CycleClock samples CPUTime. A clock belongs to the thread that opened it.
type CycleClock interface {
	Now() CPUTime
	Close() error
}

// ClockFactory opens a CycleClock for the calling thread.
type ClockFactory func() (CycleClock, error)

// nominalClock derives cycles from elapsed time at a fixed frequency. It
// stands in when hardware cycle counters are unavailable.
type nominalClock struct {
	epoch time.Time
	hz    float64
}

// NewNominalClock returns a clock that advances hz cycles per second.
func NewNominalClock(epoch time.Time, hz float64) CycleClock {
	return &nominalClock{epoch: epoch, hz: hz}
}

func (c *nominalClock) Now() CPUTime {
	ns := time.Since(c.epoch).Nanoseconds()
	return CPUTime{
		Timestamp: ns,
		Cycles:    uint64(float64(ns) * c.hz / 1e9),
	}
}

func (c *nominalClock) Close() error { return nil }

// ErrNoNominalHz is reported to the fallback callback when neither a
// hardware cycle counter nor a nominal frequency is available. Frequencies
// then read 0.
var ErrNoNominalHz = errors.New("sysinfo: no cycle counter and no nominal clock frequency")

// HostClocks returns a factory that opens a hardware cycle counter for the
// calling thread, falling back to a nominal clock at the reported maximum
// frequency. onFallback, when set, is told why the fallback was taken.
func HostClocks(epoch time.Time, onFallback func(error)) ClockFactory {
	return fallbackClocks(epoch, openPerfCycles, NominalHz, onFallback)
}

func fallbackClocks(epoch time.Time, open func(time.Time) (CycleClock, error), nominalHz func() float64, onFallback func(error)) ClockFactory {
	return func() (CycleClock, error) {
		c, err := open(epoch)
		if err == nil {
			return c, nil
		}
		hz := nominalHz()
		if hz <= 0 {
			hz = 0
			err = fmt.Errorf("%w: %w", ErrNoNominalHz, err)
		}
		if onFallback != nil {
			onFallback(err)
		}
		return NewNominalClock(epoch, hz), nil
	}
}
