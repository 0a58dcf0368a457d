package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// TrialColor fades from red on the first trial to green on the last, so
// the learning progress is readable straight off the plot.
func TrialColor(trial, trials int) color.Color {
	frac := 0.0
	if trials > 1 {
		frac = float64(trial) / float64(trials-1)
	}
	return color.RGBA{R: uint8(255 * (1 - frac)), G: uint8(255 * frac), A: 255}
}

// TrajectoryPNG writes the desired curve and every trial of one axis.
func TrajectoryPNG(path, title string, times, desired []float64, trials [][]float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "position"

	des, err := plotter.NewLine(xys(times, desired))
	if err != nil {
		return err
	}
	des.LineStyle.Width = vg.Points(2)
	des.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	des.LineStyle.Color = color.Black
	p.Add(des)
	p.Legend.Add("desired", des)

	for i, trial := range trials {
		line, err := plotter.NewLine(xys(times, trial))
		if err != nil {
			return err
		}
		line.LineStyle.Color = TrialColor(i, len(trials))
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("trial %d", i), line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// ConvergencePNG writes the per-trial mean error curve.
func ConvergencePNG(path string, means []float64) error {
	p := plot.New()
	p.Title.Text = "convergence"
	p.X.Label.Text = "trial"
	p.Y.Label.Text = "mean abs error"

	pts := make(plotter.XYs, len(means))
	for i, m := range means {
		pts[i].X = float64(i)
		pts[i].Y = m
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

func xys(times, values []float64) plotter.XYs {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}
	return pts
}
