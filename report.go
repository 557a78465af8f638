package vmperf

import (
	"fmt"
	"strings"

	"golang.org/x/perf/benchmath"
)

// PerfReport accumulates measurement samples for one operation kind over
// one reporting interval. A worker fills one per core; the monitor merges
// them into a report whose CoreDivisor is the core count.
//
// Update is the only mutator and is field-wise addition, so merging is
// associative and commutative.
type PerfReport struct {
	Name         string
	CoreDivisor  uint    // >= 1; divides the per-core display lines
	ElapsedTime  float64 // seconds spent inside kernels
	TotalOps     float64
	TotalFreqSum float64 // sum of per-sample frequencies, Hz
	SampleCount  uint64

	// corePeaks holds the throughput of each merged per-core report.
	corePeaks []float64
}

// NewPerfReport returns an empty report.
func NewPerfReport(name string) *PerfReport {
	return &PerfReport{Name: name, CoreDivisor: 1}
}

// Update adds one sample, or a batch of them, to the accumulators.
func (r *PerfReport) Update(elapsedTime, totalOps, totalFreq float64, steps uint64) {
	r.ElapsedTime += elapsedTime
	r.TotalOps += totalOps
	r.TotalFreqSum += totalFreq
	r.SampleCount += steps
}

// Merge folds o into r and remembers o's throughput for Spread.
func (r *PerfReport) Merge(o *PerfReport) {
	r.Update(o.ElapsedTime, o.TotalOps, o.TotalFreqSum, o.SampleCount)
	switch {
	case len(o.corePeaks) > 0:
		r.corePeaks = append(r.corePeaks, o.corePeaks...)
	case o.ElapsedTime > 0:
		r.corePeaks = append(r.corePeaks, o.PeakThroughput())
	}
}

// Ready reports whether the derived metrics are defined.
func (r *PerfReport) Ready() bool {
	return r.ElapsedTime > 0 && r.SampleCount > 0
}

// PeakThroughput is operations per second across all merged cores.
func (r *PerfReport) PeakThroughput() float64 {
	if r.ElapsedTime <= 0 {
		return 0
	}
	return r.TotalOps / r.ElapsedTime
}

// ArithmeticIntensity is operations per nanosecond of kernel time.
func (r *PerfReport) ArithmeticIntensity() float64 {
	if r.ElapsedTime <= 0 {
		return 0
	}
	return r.TotalOps / (r.ElapsedTime * 1e9)
}

// MeanFrequency is the average effective clock over all samples, Hz.
func (r *PerfReport) MeanFrequency() float64 {
	if r.SampleCount == 0 {
		return 0
	}
	return r.TotalFreqSum / float64(r.SampleCount)
}

func (r *PerfReport) divisor() float64 {
	if r.CoreDivisor == 0 {
		return 1
	}
	return float64(r.CoreDivisor)
}

// String renders the report. Time, Ops and Bench are per-core averages;
// Peak, AI and CpuFreq come from the undivided totals.
func (r *PerfReport) String() string {
	var sb strings.Builder
	div := r.divisor()

	fmt.Fprintf(&sb, "Name: %s\n", r.Name)
	fmt.Fprintf(&sb, "Time: %s\n", FormatScaled(r.ElapsedTime/div, RateBase, "s"))
	fmt.Fprintf(&sb, "Ops: %s\n", FormatScaled(r.TotalOps/div, CountBase, "Ops"))
	fmt.Fprintf(&sb, "Peak: %s\n", FormatScaled(r.PeakThroughput(), CountBase, "Ops/s"))
	fmt.Fprintf(&sb, "AI: %s\n", FormatScaled(r.ArithmeticIntensity(), CountBase, "Ops/ns"))
	fmt.Fprintf(&sb, "CpuFreq: %s\n", FormatScaled(r.MeanFrequency(), RateBase, "Hz"))
	fmt.Fprintf(&sb, "Bench: %s", FormatScaled(float64(r.SampleCount)/div, RateBase, "Steps"))
	return sb.String()
}

// CorePeaks returns the per-core throughputs merged into r.
func (r *PerfReport) CorePeaks() []float64 {
	out := make([]float64, len(r.corePeaks))
	copy(out, r.corePeaks)
	return out
}

// Spread summarizes per-core throughput with a distribution-free
// confidence interval around the median. ok is false for reports that
// were not merged from per-core reports.
func (r *PerfReport) Spread(confidence float64) (sum benchmath.Summary, ok bool) {
	if len(r.corePeaks) == 0 {
		return benchmath.Summary{}, false
	}
	sample := benchmath.NewSample(r.CorePeaks(), &benchmath.DefaultThresholds)
	return benchmath.AssumeNothing.Summary(sample, confidence), true
}

// SpreadString renders Spread as a single report line.
func (r *PerfReport) SpreadString(confidence float64) string {
	s, ok := r.Spread(confidence)
	if !ok {
		return "Spread: n/a"
	}
	line := fmt.Sprintf("Spread: %s [%s, %s] @%.0f%%",
		FormatScaled(s.Center, CountBase, "Ops/s"),
		FormatScaled(s.Lo, CountBase, "Ops/s"),
		FormatScaled(s.Hi, CountBase, "Ops/s"),
		s.Confidence*100)
	for _, w := range s.Warnings {
		line += " (" + w.Error() + ")"
	}
	return line
}
