// Package vmperf configuration defaults
package vmperf

import (
	"fmt"
	"time"
)

// Measurement defaults
const (
	// Kernel iterations per measurement call
	DefaultSteps = 1 << 16

	// Reporting interval per operation
	DefaultDuration = time.Second
)

// Unit scaling bases
const (
	// Counts (ops, throughput, intensity)
	CountBase = 1024

	// Frequency and step counts
	RateBase = 1000
)

// Config holds the knobs of one benchmark session.
type Config struct {
	Ops      []string      // operation filter, empty means all supported
	Cores    int           // physical core override, 0 means all
	Steps    uint64        // iteration budget per measurement call
	Duration time.Duration // reporting interval
	Rounds   int           // reports to print, 0 means until interrupted
	LogDir   string        // JSON session log directory, empty disables
	Verbose  bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Steps:    DefaultSteps,
		Duration: DefaultDuration,
	}
}

// Validate checks the parts of c that do not depend on the host.
func (c Config) Validate() error {
	if c.Steps == 0 {
		return NewConfigError("Config", "steps must be positive")
	}
	if c.Duration < 0 {
		return NewConfigError("Config", fmt.Sprintf("negative duration %v", c.Duration))
	}
	if c.Cores < 0 {
		return NewConfigError("Config", fmt.Sprintf("negative core count %d", c.Cores))
	}
	if c.Rounds < 0 {
		return NewConfigError("Config", fmt.Sprintf("negative round count %d", c.Rounds))
	}
	return nil
}
