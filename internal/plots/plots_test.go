package plots

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot"

	"holofun/internal/traces"
)

func series() traces.Series {
	return traces.Series{Label: "mean", Mean: []float64{1, 2, 3}, SEM: []float64{0.5, 0.5, 1}}
}

func TestMeanDFF_NewPlotCoversBand(t *testing.T) {
	p, err := MeanDFF(nil, series(), Options{})
	if err != nil {
		t.Fatalf("MeanDFF: %v", err)
	}
	if p.X.Min != 0 || p.X.Max != 2 {
		t.Errorf("x range = [%v, %v], want [0, 2]", p.X.Min, p.X.Max)
	}
	if p.Y.Min > 0.5 || p.Y.Max < 4 {
		t.Errorf("y range = [%v, %v], want to include [0.5, 4]", p.Y.Min, p.Y.Max)
	}
}

func TestMeanDFF_ReusesPlot(t *testing.T) {
	p := plot.New()
	got, err := MeanDFF(p, series(), Options{X: []float64{10, 20, 30}})
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Error("MeanDFF did not draw on the given plot")
	}
	if p.X.Min != 10 || p.X.Max != 30 {
		t.Errorf("x range = [%v, %v], want [10, 30]", p.X.Min, p.X.Max)
	}
}

func TestMeanDFF_MismatchedX(t *testing.T) {
	if _, err := MeanDFF(nil, series(), Options{X: []float64{1}}); err == nil {
		t.Error("expected error for mismatched x values")
	}
}

func TestMeanDFFByCell(t *testing.T) {
	cells := []traces.Series{series(), {Label: "1", Mean: []float64{0, 0, 0}, SEM: []float64{1, 1, 1}}}
	p, err := MeanDFFByCell(nil, cells, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Y.Min > -1 {
		t.Errorf("y min = %v, want <= -1", p.Y.Min)
	}
}

func TestTuningCurve_Ticks(t *testing.T) {
	pts := []traces.TuningPoint{{Ori: 0, Mean: 1, SEM: 0.1, N: 3}, {Ori: 45, Mean: 2, SEM: 0.2, N: 3}}
	p, err := TuningCurve(nil, pts, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ticks := p.X.Tick.Marker.Ticks(0, 45)
	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	if diff := cmp.Diff([]string{"0", "45"}, labels); diff != "" {
		t.Errorf("tick labels mismatch (-want +got):\n%s", diff)
	}
	if _, err := TuningCurve(nil, nil, Options{}); err == nil {
		t.Error("expected error for empty tuning curve")
	}
}

func TestUpdateAll(t *testing.T) {
	plots := []*plot.Plot{plot.New(), plot.New()}
	updates := []Update{}
	for _, s := range []string{"title=V1", "xlabel=Time (s)", "ylabel=dF/F", "xlim=0,10", "ylim=-1,2", "legend=top-left"} {
		u, err := ParseUpdate(s)
		if err != nil {
			t.Fatalf("ParseUpdate(%q): %v", s, err)
		}
		updates = append(updates, u)
	}
	if err := UpdateAll(plots, updates...); err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	for i, p := range plots {
		if p.Title.Text != "V1" || p.X.Label.Text != "Time (s)" || p.Y.Label.Text != "dF/F" {
			t.Errorf("plot %d labels = %q %q %q", i, p.Title.Text, p.X.Label.Text, p.Y.Label.Text)
		}
		if p.X.Min != 0 || p.X.Max != 10 || p.Y.Min != -1 || p.Y.Max != 2 {
			t.Errorf("plot %d limits = x[%v,%v] y[%v,%v]", i, p.X.Min, p.X.Max, p.Y.Min, p.Y.Max)
		}
		if !p.Legend.Top || !p.Legend.Left {
			t.Errorf("plot %d legend not top-left", i)
		}
	}
}

func TestUpdateAll_Errors(t *testing.T) {
	if _, err := ParseUpdate("set_xscale=log"); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("ParseUpdate err = %v, want ErrUnknownOp", err)
	}
	if err := UpdateAll([]*plot.Plot{plot.New()}, Update{Op: "eval", Arg: "x"}); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("UpdateAll err = %v, want ErrUnknownOp", err)
	}
	for _, arg := range []string{"1", "a,2", "3,1"} {
		if err := UpdateAll([]*plot.Plot{plot.New()}, Update{Op: OpXLim, Arg: arg}); err == nil {
			t.Errorf("xlim=%s: expected error", arg)
		}
	}
}

func TestStyle_Normalize(t *testing.T) {
	s, warns := Style{Format: "webp", WidthCM: 5}.Normalize()
	if s.Format != "pdf" || s.HeightCM != DefaultStyle().HeightCM {
		t.Errorf("normalized = %+v", s)
	}
	if len(warns) != 2 || warns[0].Setting != "format" || warns[1].Setting != "height" {
		t.Errorf("warnings = %v", warns)
	}
	if _, warns := DefaultStyle().Normalize(); len(warns) != 0 {
		t.Errorf("default style warnings = %v", warns)
	}
}

func TestStyle_SaveAddsExtension(t *testing.T) {
	p, err := MeanDFF(nil, series(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	style := DefaultStyle()
	style.Format = "png"
	out, _, err := style.Save(p, filepath.Join(t.TempDir(), "mean"), nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Ext(out) != ".png" {
		t.Errorf("saved to %s, want .png", out)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("no figure written: %v", err)
	}
	if _, _, err := style.Save(p, filepath.Join(t.TempDir(), "mean.webp"), nil); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestCmToInch(t *testing.T) {
	if got := CmToInch(2.54); math.Abs(got-1) > 1e-12 {
		t.Errorf("CmToInch(2.54) = %v", got)
	}
}
