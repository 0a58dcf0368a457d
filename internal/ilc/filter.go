package ilc

import (
	"gonum.org/v1/gonum/mat"
)

// Savitzky-Golay smoothing of the measured position errors: a cubic fit
// over an 11-sample sliding window.
const (
	savgolWindow = 11
	savgolOrder  = 3
)

// savgol smooths one series. Interior samples take the fitted value at the
// window center; the leading and trailing half windows are replaced by
// polynomial fits over the first and last full windows. Series shorter
// than the window pass through unchanged.
func savgol(y []float64) ([]float64, error) {
	n := len(y)
	out := make([]float64, n)
	copy(out, y)
	if n < savgolWindow {
		return out, nil
	}
	half := savgolWindow / 2

	w, err := centerWeights()
	if err != nil {
		return nil, err
	}
	for i := half; i < n-half; i++ {
		acc := 0.0
		for j := 0; j < savgolWindow; j++ {
			acc += w[j] * y[i-half+j]
		}
		out[i] = acc
	}

	left, err := polyfit(y[:savgolWindow])
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		out[i] = polyval(left, float64(i))
	}

	right, err := polyfit(y[n-savgolWindow:])
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		out[n-half+i] = polyval(right, float64(savgolWindow-half+i))
	}
	return out, nil
}

// centerWeights returns the convolution row that evaluates the local
// least squares cubic at the window center.
func centerWeights() ([]float64, error) {
	half := savgolWindow / 2
	a := designMatrix(func(k int) float64 { return float64(k - half) })

	var g mat.Dense
	g.Mul(a.T(), a)

	e0 := mat.NewVecDense(savgolOrder+1, nil)
	e0.SetVec(0, 1)
	var c mat.VecDense
	if err := c.SolveVec(&g, e0); err != nil {
		return nil, err
	}

	w := make([]float64, savgolWindow)
	for k := 0; k < savgolWindow; k++ {
		sum := 0.0
		for d := 0; d <= savgolOrder; d++ {
			sum += a.At(k, d) * c.AtVec(d)
		}
		w[k] = sum
	}
	return w, nil
}

func designMatrix(pos func(k int) float64) *mat.Dense {
	a := mat.NewDense(savgolWindow, savgolOrder+1, nil)
	for k := 0; k < savgolWindow; k++ {
		p := 1.0
		for d := 0; d <= savgolOrder; d++ {
			a.Set(k, d, p)
			p *= pos(k)
		}
	}
	return a
}

func polyfit(y []float64) ([]float64, error) {
	a := designMatrix(func(k int) float64 { return float64(k) })
	return pinvSolve(a, y)
}

func polyval(c []float64, t float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*t + c[i]
	}
	return v
}
