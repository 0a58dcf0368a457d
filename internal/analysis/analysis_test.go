package analysis

import (
	"math"
	"testing"
)

func TestConvergenceRate_Geometric(t *testing.T) {
	// e_k = 0.1^k is an exact fit, so the regression recovers r = 0.1.
	means := []float64{1, 0.1, 0.01, 0.001}
	rate, ok := ConvergenceRate(means)
	if !ok {
		t.Fatal("fit should succeed")
	}
	if math.Abs(rate-0.1) > 1e-9 {
		t.Errorf("rate = %g, want 0.1", rate)
	}
}

func TestConvergenceRate_Decreasing(t *testing.T) {
	means := []float64{0.5, 0.2, 0.11, 0.05, 0.028}
	rate, ok := ConvergenceRate(means)
	if !ok {
		t.Fatal("fit should succeed")
	}
	if rate <= 0 || rate >= 1 {
		t.Errorf("rate = %g, want in (0, 1) for a decreasing sequence", rate)
	}
}

func TestConvergenceRate_SkipsNonPositive(t *testing.T) {
	means := []float64{1, 0.1, 0, 0.001}
	rate, ok := ConvergenceRate(means)
	if !ok {
		t.Fatal("fit should succeed with the zero entry skipped")
	}
	if math.Abs(rate-0.1) > 1e-9 {
		t.Errorf("rate = %g, want 0.1", rate)
	}

	if _, ok := ConvergenceRate([]float64{0.5}); ok {
		t.Error("single point should not fit")
	}
	if _, ok := ConvergenceRate([]float64{0, 0, 0}); ok {
		t.Error("all-zero series should not fit")
	}
}

func TestErrorRatios(t *testing.T) {
	ratios := ErrorRatios([]float64{2, 1, 0.25})
	if len(ratios) != 2 {
		t.Fatalf("got %d ratios, want 2", len(ratios))
	}
	if ratios[0] != 0.5 || ratios[1] != 0.25 {
		t.Errorf("ratios = %v, want [0.5 0.25]", ratios)
	}
	if got := ErrorRatios([]float64{1}); got != nil {
		t.Errorf("single entry should give nil, got %v", got)
	}
}

func TestSpectrum_Sinusoid(t *testing.T) {
	// 4 Hz tone, 200 samples at 100 Hz: an integer 8 cycles, so the peak
	// lands exactly on bin 8 and the Hann window only trims its skirts.
	const (
		dt   = 0.01
		n    = 200
		freq = 4.0
	)
	series := make([]float64, n)
	for i := range series {
		series[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}

	mags, df := Spectrum(series, dt)
	if len(mags) != n/2 {
		t.Fatalf("got %d bins, want %d", len(mags), n/2)
	}
	if math.Abs(df-0.5) > 1e-12 {
		t.Errorf("df = %g, want 0.5", df)
	}
	dom := DominantFrequency(mags, df)
	if math.Abs(dom-freq) > df/2 {
		t.Errorf("dominant frequency = %g, want %g", dom, freq)
	}
}

func TestSpectrum_Degenerate(t *testing.T) {
	if mags, df := Spectrum(nil, 0.01); mags != nil || df != 0 {
		t.Error("empty series should return nil spectrum")
	}
	if mags, df := Spectrum([]float64{1, 2, 3}, 0); mags != nil || df != 0 {
		t.Error("non-positive dt should return nil spectrum")
	}
	// Odd length must work: the horizon is rarely a power of two.
	mags, df := Spectrum([]float64{1, 2, 3, 4, 5, 6, 7}, 0.02)
	if len(mags) != 3 || df <= 0 {
		t.Errorf("odd length: got %d bins, df %g", len(mags), df)
	}
}
