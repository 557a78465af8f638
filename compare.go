package vmperf

import (
	"sort"

	"golang.org/x/perf/benchmath"
)

// OperationDelta compares the peak throughput samples of one operation
// across two sessions.
type OperationDelta struct {
	Name       string
	Old, New   benchmath.Summary
	Comparison benchmath.Comparison
	Missing    bool // present in only one session
}

// Delta renders the relative change, or "~" when the difference is not
// significant.
func (d OperationDelta) Delta() string {
	if d.Missing {
		return "missing"
	}
	return d.Comparison.FormatDelta(d.Old.Center, d.New.Center)
}

// CompareSessions compares every operation seen in either session, sorted
// by name.
func CompareSessions(old, new *Session, confidence float64) []OperationDelta {
	oldSamples, newSamples := old.Samples(), new.Samples()

	names := make(map[string]bool)
	for name := range oldSamples {
		names[name] = true
	}
	for name := range newSamples {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var out []OperationDelta
	for _, name := range sorted {
		d := OperationDelta{Name: name}
		o, n := oldSamples[name], newSamples[name]
		if len(o) == 0 || len(n) == 0 {
			d.Missing = true
			out = append(out, d)
			continue
		}
		s1 := benchmath.NewSample(o, &benchmath.DefaultThresholds)
		s2 := benchmath.NewSample(n, &benchmath.DefaultThresholds)
		d.Old = benchmath.AssumeNothing.Summary(s1, confidence)
		d.New = benchmath.AssumeNothing.Summary(s2, confidence)
		d.Comparison = benchmath.AssumeNothing.Compare(s1, s2)
		out = append(out, d)
	}
	return out
}
