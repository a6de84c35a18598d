package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"holofun/internal/logging"
	"holofun/internal/plots"
	"holofun/internal/timing"
	"holofun/internal/traces"
)

var plotFlags struct {
	kind     string
	out      string
	trials   string
	cells    string
	cell     int
	dropGrey bool
	fps      float64
	updates  []string
	format   string
	widthCM  float64
	heightCM float64
	opaque   bool
}

var plotCmd = &cobra.Command{
	Use:   "plot <data.json>",
	Short: "Plot mean dF/F traces or an orientation tuning curve",
	Long: `Kinds:
  mean     mean over the selected trials and cells with an SEM band
           (input: [trial][cell][time] JSON array; --cell plots one cell)
  by-cell  one mean trace per selected cell
  tuning   tuning curve of --cell (input: [{"cell","ori","df"}] JSON array)

Axis updates are op=arg pairs: title, xlabel, ylabel, xlim=lo,hi, ylim=lo,hi,
legend=top-left|top-right|bottom-left|bottom-right.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	def := plots.DefaultStyle()
	f := plotCmd.Flags()
	f.StringVar(&plotFlags.kind, "kind", "mean", "Plot kind: mean, by-cell, tuning")
	f.StringVarP(&plotFlags.out, "out", "o", "", "Output figure path (required)")
	f.StringVar(&plotFlags.trials, "trials", "", "Comma-separated trial indices (default all)")
	f.StringVar(&plotFlags.cells, "cells", "", "Comma-separated cell indices (default all)")
	f.IntVar(&plotFlags.cell, "cell", -1, "Single cell index (mean and tuning; not combinable with --cells)")
	f.BoolVar(&plotFlags.dropGrey, "drop-grey", true, "Drop grey-screen samples from tuning curves")
	f.Float64Var(&plotFlags.fps, "fps", 0, "Frame rate; x axis in seconds when set")
	f.StringArrayVar(&plotFlags.updates, "update", nil, "Axis update op=arg (repeatable)")
	f.StringVar(&plotFlags.format, "format", def.Format, "Format when --out has no extension")
	f.Float64Var(&plotFlags.widthCM, "width-cm", def.WidthCM, "Figure width in cm")
	f.Float64Var(&plotFlags.heightCM, "height-cm", def.HeightCM, "Figure height in cm")
	f.BoolVar(&plotFlags.opaque, "opaque", false, "Draw an opaque background")

	_ = plotCmd.MarkFlagRequired("out")
}

func runPlot(cmd *cobra.Command, args []string) error {
	updates := make([]plots.Update, 0, len(plotFlags.updates))
	for _, s := range plotFlags.updates {
		u, err := plots.ParseUpdate(s)
		if err != nil {
			return err
		}
		updates = append(updates, u)
	}

	log := logging.New("plot")
	p, err := timing.Timed(log, "draw", func() (*plot.Plot, error) {
		return drawPlot(args[0])
	})
	if err != nil {
		return err
	}
	if err := plots.UpdateAll([]*plot.Plot{p}, updates...); err != nil {
		return err
	}

	style := plots.Style{
		Format:      plotFlags.format,
		Transparent: !plotFlags.opaque,
		WidthCM:     plotFlags.widthCM,
		HeightCM:    plotFlags.heightCM,
	}
	saved, warns, err := style.Save(p, plotFlags.out, log)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, w := range warns {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintln(out, saved)
	return nil
}

func drawPlot(input string) (*plot.Plot, error) {
	if plotFlags.kind == "tuning" {
		if plotFlags.cell < 0 {
			return nil, fmt.Errorf("--cell is required for tuning curves")
		}
		samples, err := traces.LoadOriSamples(input)
		if err != nil {
			return nil, err
		}
		points := traces.TuningCurve(samples, plotFlags.cell, plotFlags.dropGrey)
		p, err := plots.TuningCurve(nil, points, plots.Options{})
		if err != nil {
			return nil, err
		}
		p.X.Label.Text = "Orientation (deg)"
		p.Y.Label.Text = "dF/F"
		return p, nil
	}

	tw, err := traces.LoadJSON(input)
	if err != nil {
		return nil, err
	}
	trials, err := parseInts(plotFlags.trials)
	if err != nil {
		return nil, fmt.Errorf("--trials: %w", err)
	}
	cells, err := parseInts(plotFlags.cells)
	if err != nil {
		return nil, fmt.Errorf("--cells: %w", err)
	}
	_, _, frames := tw.Shape()
	x := timeAxis(frames, plotFlags.fps)

	var p *plot.Plot
	switch plotFlags.kind {
	case "mean":
		var s traces.Series
		if plotFlags.cell >= 0 && cells != nil {
			return nil, fmt.Errorf("--cell and --cells are mutually exclusive")
		}
		if plotFlags.cell >= 0 {
			s, err = tw.MeanDFFOfCell(plotFlags.cell, trials)
		} else {
			s, err = tw.MeanDFF(traces.Selection{Trials: trials, Cells: cells})
		}
		if err != nil {
			return nil, err
		}
		p, err = plots.MeanDFF(nil, s, plots.Options{X: x})
	case "by-cell":
		var series []traces.Series
		series, err = tw.MeanDFFByCell(traces.Selection{Trials: trials, Cells: cells})
		if err != nil {
			return nil, err
		}
		p, err = plots.MeanDFFByCell(nil, series, x)
	default:
		return nil, fmt.Errorf("unknown plot kind %q (want mean, by-cell or tuning)", plotFlags.kind)
	}
	if err != nil {
		return nil, err
	}
	p.X.Label.Text = "Frame"
	if plotFlags.fps > 0 {
		p.X.Label.Text = "Time (s)"
	}
	p.Y.Label.Text = "dF/F"
	return p, nil
}

func timeAxis(frames int, fps float64) []float64 {
	if fps <= 0 {
		return nil
	}
	x := make([]float64, frames)
	for i := range x {
		x[i] = float64(i) / fps
	}
	return x
}
