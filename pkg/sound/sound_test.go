package sound

import (
	"math"
	"testing"
	"time"
)

func sine(rate int, freq float64, d time.Duration, amp float64) []float64 {
	n := int(float64(rate) * d.Seconds())
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func newTestAnalyzer(rate int, mono []float64) *Analyzer {
	return &Analyzer{
		mono:     mono,
		rate:     rate,
		duration: time.Duration(float64(len(mono)) / float64(rate) * float64(time.Second)),
	}
}

func TestPeak(t *testing.T) {
	a := newTestAnalyzer(8000, sine(8000, 440, time.Second, 0.8))
	got := a.Peak()
	if got < 0.79 || got > 0.81 {
		t.Fatalf("Peak() = %v; want ~0.8", got)
	}
}

func TestNearSilent(t *testing.T) {
	rate := 8000
	tests := []struct {
		name string
		mono []float64
		want bool
	}{
		{"silence", make([]float64, rate), true},
		{"speech", sine(rate, 200, time.Second, 0.5), false},
		{
			"mostly silence",
			append(make([]float64, rate*9), sine(rate, 200, time.Second, 0.5)...),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(rate, tt.mono)
			if got := a.NearSilent(0.5); got != tt.want {
				t.Fatalf("NearSilent() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestRMSWindowCount(t *testing.T) {
	rate := 8000
	a := newTestAnalyzer(rate, sine(rate, 440, time.Second, 0.5))
	rms := a.RMS(100 * time.Millisecond)
	if len(rms) != 10 {
		t.Fatalf("len(RMS()) = %d; want 10", len(rms))
	}
	// RMS of a sine is amplitude over sqrt(2)
	want := 0.5 / math.Sqrt2
	for i, v := range rms {
		if math.Abs(v-want) > 0.01 {
			t.Fatalf("RMS()[%d] = %v; want ~%v", i, v, want)
		}
	}
}

func TestDuration(t *testing.T) {
	a := newTestAnalyzer(8000, make([]float64, 8000*3))
	if got := a.Duration(); got != 3*time.Second {
		t.Fatalf("Duration() = %v; want %v", got, 3*time.Second)
	}
}
