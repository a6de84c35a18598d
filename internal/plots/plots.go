// Package plots draws trace summaries onto gonum plots.
//
// Every helper takes an existing *plot.Plot (or nil for a fresh one) and
// returns the plot it drew on, so several calls can share one chart.
package plots

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"holofun/internal/traces"
)

// BandAlpha is the opacity of SEM bands.
const BandAlpha = 0x80

// Options tweaks how a series is drawn.
type Options struct {
	X     []float64 // x values; frame indices when nil
	Color color.Color
	// Index picks a palette color when Color is nil.
	Index int
}

func (o Options) color() color.Color {
	if o.Color != nil {
		return o.Color
	}
	return plotutil.Color(o.Index)
}

func ensure(p *plot.Plot) *plot.Plot {
	if p == nil {
		return plot.New()
	}
	return p
}

func xValues(x []float64, n int) ([]float64, error) {
	if x == nil {
		out := make([]float64, n)
		for i := range out {
			out[i] = float64(i)
		}
		return out, nil
	}
	if len(x) != n {
		return nil, fmt.Errorf("plots: %d x values for %d samples", len(x), n)
	}
	return x, nil
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: BandAlpha}
}

// MeanDFF draws a mean trace with a shaded +/- SEM band.
func MeanDFF(p *plot.Plot, s traces.Series, opts Options) (*plot.Plot, error) {
	p = ensure(p)
	x, err := xValues(opts.X, len(s.Mean))
	if err != nil {
		return nil, err
	}
	c := opts.color()

	line := make(plotter.XYs, len(x))
	upper := make(plotter.XYs, len(x))
	lower := make(plotter.XYs, len(x))
	for i := range x {
		line[i] = plotter.XY{X: x[i], Y: s.Mean[i]}
		upper[i] = plotter.XY{X: x[i], Y: s.Mean[i] + s.SEM[i]}
		lower[len(x)-1-i] = plotter.XY{X: x[i], Y: s.Mean[i] - s.SEM[i]}
	}

	band, err := plotter.NewPolygon(append(upper, lower...))
	if err != nil {
		return nil, fmt.Errorf("plots: sem band: %w", err)
	}
	band.Color = translucent(c)
	band.LineStyle.Width = 0

	l, err := plotter.NewLine(line)
	if err != nil {
		return nil, fmt.Errorf("plots: mean line: %w", err)
	}
	l.Color = c

	p.Add(band, l)
	if s.Label != "" {
		p.Legend.Add(s.Label, l)
	}
	return p, nil
}

// MeanDFFByCell draws one mean trace per cell, cycling the palette.
func MeanDFFByCell(p *plot.Plot, series []traces.Series, x []float64) (*plot.Plot, error) {
	p = ensure(p)
	for i, s := range series {
		if _, err := MeanDFF(p, s, Options{X: x, Index: i}); err != nil {
			return nil, fmt.Errorf("cell %s: %w", s.Label, err)
		}
	}
	return p, nil
}

type tuningErrors struct {
	plotter.XYs
	plotter.YErrors
}

// TuningCurve draws mean response against orientation with SEM error bars
// and labels each orientation on the x axis.
func TuningCurve(p *plot.Plot, points []traces.TuningPoint, opts Options) (*plot.Plot, error) {
	p = ensure(p)
	if len(points) == 0 {
		return nil, fmt.Errorf("plots: empty tuning curve")
	}
	data := tuningErrors{
		XYs:     make(plotter.XYs, len(points)),
		YErrors: make(plotter.YErrors, len(points)),
	}
	ticks := make([]plot.Tick, len(points))
	for i, pt := range points {
		data.XYs[i] = plotter.XY{X: pt.Ori, Y: pt.Mean}
		data.YErrors[i].Low = pt.SEM
		data.YErrors[i].High = pt.SEM
		ticks[i] = plot.Tick{Value: pt.Ori, Label: fmt.Sprint(pt.Ori)}
	}
	c := opts.color()

	l, err := plotter.NewLine(data.XYs)
	if err != nil {
		return nil, fmt.Errorf("plots: tuning line: %w", err)
	}
	l.Color = c
	l.Width = 2 * l.Width

	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return nil, fmt.Errorf("plots: error bars: %w", err)
	}
	bars.Color = c

	p.Add(l, bars)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Label.Text = "ΔF/F"
	return p, nil
}
