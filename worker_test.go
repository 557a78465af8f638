package vmperf

import (
	"testing"

	"github.com/LynnColeArt/vmperf/ops"
)

func TestSampleLoop(t *testing.T) {
	tests := []struct {
		name      string
		ns        int64
		duration  float64
		wantCalls int64
	}{
		{"zero duration runs once", 5e8, 0, 1},
		{"stops at exact duration", 2.5e8, 1, 4},
		{"overshoots by one sample", 3e8, 1, 4},
		{"single long sample", 2e9, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{ns: tt.ns, opsPerStep: 8}
			r := sampleLoop(src, &fakeClock{}, ops.FMA_F32_F32, 100, tt.duration)

			if got := src.calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
			if r.SampleCount != uint64(tt.wantCalls) {
				t.Errorf("SampleCount = %d, want %d", r.SampleCount, tt.wantCalls)
			}
			if r.TotalOps != float64(tt.wantCalls*800) {
				t.Errorf("TotalOps = %g", r.TotalOps)
			}
			if r.ElapsedTime < tt.duration {
				t.Errorf("ElapsedTime %g below duration %g", r.ElapsedTime, tt.duration)
			}
			if r.Name != "FMA_F32_F32" {
				t.Errorf("Name = %q", r.Name)
			}
			if got := r.MeanFrequency(); got != 3e9 {
				t.Errorf("MeanFrequency = %g, want 3e9", got)
			}
		})
	}
}

func TestSampleLoopIgnoresBackwardCycles(t *testing.T) {
	clock := &backwardClock{}
	r := sampleLoop(&fakeSource{ns: 1e9, opsPerStep: 1}, clock, ops.FMA_F32_F32, 1, 0)
	if r.TotalFreqSum != 0 {
		t.Errorf("TotalFreqSum = %g, want 0", r.TotalFreqSum)
	}
}
