package vmperf

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/LynnColeArt/vmperf/ops"
)

// SpreadConfidence is the confidence level of the verbose spread line.
const SpreadConfidence = 0.95

// Measurer produces one merged report per call.
type Measurer interface {
	Measure(kind ops.Kind, steps uint64, duration time.Duration) *PerfReport
}

// DriverOptions controls a Driver's loop.
type DriverOptions struct {
	Steps    uint64
	Duration time.Duration
	Rounds   int  // reports to print, 0 means until the context ends
	Verbose  bool // append the per-core spread line
}

// Driver cycles through the selected operations, printing one report per
// operation.
type Driver struct {
	kinds []ops.Kind
	opts  DriverOptions
	log   *ReportLogger
	next  int
}

// NewDriver resolves filter against the operations p supports. An empty
// filter selects all of them. The selection is fixed here, before any
// worker exists, so an empty result never starts a monitor.
func NewDriver(p *Platform, filter []string, opts DriverOptions) (*Driver, error) {
	kinds, err := SelectKinds(p.Family, p.Source.Supported(), filter)
	if err != nil {
		return nil, err
	}
	if opts.Steps == 0 {
		opts.Steps = DefaultSteps
	}
	return &Driver{kinds: kinds, opts: opts}, nil
}

// SelectKinds keeps the members of supported named by filter, in
// supported order. Names must belong to family; blank names are ignored.
func SelectKinds(family ops.Family, supported []ops.Kind, filter []string) ([]ops.Kind, error) {
	want := make(map[ops.Kind]bool)
	for _, name := range filter {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, ok := ops.ParseKind(family, name)
		if !ok {
			return nil, NewConfigError("Driver", fmt.Sprintf("unknown %s operation %q", family, name))
		}
		want[k] = true
	}

	var kinds []ops.Kind
	for _, k := range supported {
		if len(want) == 0 || want[k] {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, ErrNoOperations
	}
	return kinds, nil
}

// Kinds returns the operations the driver cycles through.
func (d *Driver) Kinds() []ops.Kind {
	out := make([]ops.Kind, len(d.kinds))
	copy(out, d.kinds)
	return out
}

// SetReportLogger records every printed report to l. nil disables recording.
func (d *Driver) SetReportLogger(l *ReportLogger) {
	d.log = l
}

// Run prints reports to w until ctx ends or the round limit is reached.
// A measurement that completes after ctx ends is discarded. Ending the
// context is a normal exit and returns nil.
func (d *Driver) Run(ctx context.Context, m Measurer, w io.Writer) error {
	for printed := 0; d.opts.Rounds == 0 || printed < d.opts.Rounds; printed++ {
		if ctx.Err() != nil {
			return nil
		}

		kind := d.kinds[d.next]
		report := m.Measure(kind, d.opts.Steps, d.opts.Duration)
		if ctx.Err() != nil {
			return nil
		}

		out := report.String()
		if d.opts.Verbose {
			out += "\n" + report.SpreadString(SpreadConfidence)
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", out); err != nil {
			return err
		}
		if d.log != nil {
			if err := d.log.Record(report); err != nil {
				return NewExternalError("Driver", "session log write failed", err)
			}
		}

		d.next = (d.next + 1) % len(d.kinds)
	}
	return nil
}
