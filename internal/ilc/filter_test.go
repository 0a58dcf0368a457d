package ilc

import (
	"math"
	"testing"
)

func TestSavgol_CubicExact(t *testing.T) {
	n := 25
	y := make([]float64, n)
	for i := range y {
		x := float64(i)
		y[i] = 0.3 + 0.5*x - 0.02*x*x + 0.001*x*x*x
	}

	got, err := savgol(y)
	if err != nil {
		t.Fatalf("savgol failed: %v", err)
	}
	if len(got) != n {
		t.Fatalf("len(savgol) = %d, want %d", len(got), n)
	}
	for i := range y {
		if math.Abs(got[i]-y[i]) > 1e-8 {
			t.Errorf("savgol[%d] = %v, want %v", i, got[i], y[i])
		}
	}
}

func TestSavgol_ShortSeriesCopied(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5}
	got, err := savgol(y)
	if err != nil {
		t.Fatalf("savgol failed: %v", err)
	}
	for i := range y {
		if got[i] != y[i] {
			t.Errorf("savgol[%d] = %v, want %v", i, got[i], y[i])
		}
	}
	got[0] = 99
	if y[0] != 1 {
		t.Error("short series must be copied, not aliased")
	}
}

func TestSavgol_SmoothsAlternatingNoise(t *testing.T) {
	n := 40
	clean := make([]float64, n)
	noisy := make([]float64, n)
	for i := range clean {
		x := float64(i)
		clean[i] = 0.01 * x * x
		noise := 0.05
		if i%2 == 1 {
			noise = -0.05
		}
		noisy[i] = clean[i] + noise
	}

	got, err := savgol(noisy)
	if err != nil {
		t.Fatalf("savgol failed: %v", err)
	}

	var before, after float64
	for i := range clean {
		before += math.Abs(noisy[i] - clean[i])
		after += math.Abs(got[i] - clean[i])
	}
	if after >= 0.9*before {
		t.Errorf("residual after filtering = %v, want well under %v", after, before)
	}
}
