package vmperf

import (
	"strings"
	"testing"
)

func sessionOf(name string, peaks ...float64) *Session {
	s := &Session{Family: "arm64"}
	for _, p := range peaks {
		s.Reports = append(s.Reports, ReportRecord{Name: name, PeakThroughput: p})
	}
	return s
}

func TestCompareSessions(t *testing.T) {
	old := sessionOf("DOT_S8_S32", 100, 101, 102, 103, 104, 105, 106, 107)
	cur := sessionOf("DOT_S8_S32", 200, 201, 202, 203, 204, 205, 206, 207)
	cur.Reports = append(cur.Reports, ReportRecord{Name: "FMA_F32_F32", PeakThroughput: 5})

	deltas := CompareSessions(old, cur, 0.95)
	if len(deltas) != 2 {
		t.Fatalf("deltas = %d, want 2", len(deltas))
	}

	dot := deltas[0]
	if dot.Name != "DOT_S8_S32" || dot.Missing {
		t.Fatalf("first delta = %+v", dot)
	}
	if dot.Old.Center >= dot.New.Center {
		t.Errorf("centers %g -> %g", dot.Old.Center, dot.New.Center)
	}
	if d := dot.Delta(); !strings.HasPrefix(d, "+") {
		t.Errorf("Delta = %q, want a significant increase", d)
	}

	fma := deltas[1]
	if fma.Name != "FMA_F32_F32" || !fma.Missing || fma.Delta() != "missing" {
		t.Errorf("second delta = %+v", fma)
	}
}

func TestCompareSessionsNoChange(t *testing.T) {
	old := sessionOf("DOT_S8_S32", 100, 102, 104, 106, 108)
	cur := sessionOf("DOT_S8_S32", 101, 103, 105, 107, 109)
	deltas := CompareSessions(old, cur, 0.95)
	if len(deltas) != 1 {
		t.Fatalf("deltas = %d", len(deltas))
	}
	if d := deltas[0].Delta(); d != "~" {
		t.Errorf("Delta = %q, want ~", d)
	}
}
