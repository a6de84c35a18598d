// Package traces reduces trial-wise fluorescence arrays to mean and standard
// error traces.
package traces

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrShape is returned for ragged or empty arrays and out-of-range indices.
var ErrShape = errors.New("traces: bad shape")

// Trialwise is a trial x cell x time array of dF/F values.
type Trialwise struct {
	data   [][][]float64
	trials int
	cells  int
	frames int
}

// NewTrialwise validates that data is rectangular and non-empty.
func NewTrialwise(data [][][]float64) (*Trialwise, error) {
	if len(data) == 0 || len(data[0]) == 0 || len(data[0][0]) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrShape)
	}
	cells, frames := len(data[0]), len(data[0][0])
	for t, trial := range data {
		if len(trial) != cells {
			return nil, fmt.Errorf("%w: trial %d has %d cells, want %d", ErrShape, t, len(trial), cells)
		}
		for c, trace := range trial {
			if len(trace) != frames {
				return nil, fmt.Errorf("%w: trial %d cell %d has %d frames, want %d", ErrShape, t, c, len(trace), frames)
			}
		}
	}
	return &Trialwise{data: data, trials: len(data), cells: cells, frames: frames}, nil
}

// LoadJSON reads a nested JSON array [trial][cell][time].
func LoadJSON(path string) (*Trialwise, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read traces: %w", err)
	}
	var data [][][]float64
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse traces %s: %w", path, err)
	}
	return NewTrialwise(data)
}

// Shape returns the trial, cell and frame counts.
func (tw *Trialwise) Shape() (trials, cells, frames int) { return tw.trials, tw.cells, tw.frames }

// At returns one sample.
func (tw *Trialwise) At(trial, cell, frame int) float64 { return tw.data[trial][cell][frame] }

// Selection picks a subset of trials and cells. Nil slices mean all.
type Selection struct {
	Trials []int
	Cells  []int
}

func (tw *Trialwise) resolve(sel Selection) (trials, cells []int, err error) {
	trials, err = indices(sel.Trials, tw.trials, "trial")
	if err != nil {
		return nil, nil, err
	}
	cells, err = indices(sel.Cells, tw.cells, "cell")
	if err != nil {
		return nil, nil, err
	}
	return trials, cells, nil
}

func indices(sel []int, n int, what string) ([]int, error) {
	if sel == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	if len(sel) == 0 {
		return nil, fmt.Errorf("%w: empty %s selection", ErrShape, what)
	}
	for _, i := range sel {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: %s %d out of range [0,%d)", ErrShape, what, i, n)
		}
	}
	return sel, nil
}

// Series is a mean trace with its standard error per frame.
type Series struct {
	Label string
	Mean  []float64
	SEM   []float64
}

// SEM is the standard error of the mean with one degree of freedom removed,
// NaN for fewer than two samples.
func SEM(x []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.StdErr(stat.StdDev(x, nil), float64(len(x)))
}

// trialMean averages one cell over the given trials at every frame.
func (tw *Trialwise) trialMean(trials []int, cell int) []float64 {
	out := make([]float64, tw.frames)
	col := make([]float64, len(trials))
	for f := 0; f < tw.frames; f++ {
		for i, t := range trials {
			col[i] = tw.data[t][cell][f]
		}
		out[f] = stat.Mean(col, nil)
	}
	return out
}

// MeanDFF averages over trials and then over cells. The error band is the SEM
// across cells of the per-cell trial means.
func (tw *Trialwise) MeanDFF(sel Selection) (Series, error) {
	trials, cells, err := tw.resolve(sel)
	if err != nil {
		return Series{}, err
	}
	perCell := make([][]float64, len(cells))
	for i, c := range cells {
		perCell[i] = tw.trialMean(trials, c)
	}
	s := Series{Label: "mean", Mean: make([]float64, tw.frames), SEM: make([]float64, tw.frames)}
	col := make([]float64, len(cells))
	for f := 0; f < tw.frames; f++ {
		for i := range cells {
			col[i] = perCell[i][f]
		}
		s.Mean[f] = stat.Mean(col, nil)
		s.SEM[f] = SEM(col)
	}
	return s, nil
}

// MeanDFFByCell returns one Series per selected cell, averaged over trials
// with the SEM across trials.
func (tw *Trialwise) MeanDFFByCell(sel Selection) ([]Series, error) {
	trials, cells, err := tw.resolve(sel)
	if err != nil {
		return nil, err
	}
	out := make([]Series, len(cells))
	for i, c := range cells {
		out[i] = tw.cellSeries(trials, c)
	}
	return out, nil
}

// MeanDFFOfCell is MeanDFFByCell for a single cell.
func (tw *Trialwise) MeanDFFOfCell(cell int, trials []int) (Series, error) {
	series, err := tw.MeanDFFByCell(Selection{Trials: trials, Cells: []int{cell}})
	if err != nil {
		return Series{}, err
	}
	return series[0], nil
}

func (tw *Trialwise) cellSeries(trials []int, cell int) Series {
	s := Series{Label: fmt.Sprint(cell), Mean: make([]float64, tw.frames), SEM: make([]float64, tw.frames)}
	col := make([]float64, len(trials))
	for f := 0; f < tw.frames; f++ {
		for i, t := range trials {
			col[i] = tw.data[t][cell][f]
		}
		s.Mean[f] = stat.Mean(col, nil)
		s.SEM[f] = SEM(col)
	}
	return s
}

// OriSample is one trial's response of a cell to a grating orientation.
// A negative orientation marks a grey-screen trial.
type OriSample struct {
	Cell     int     `json:"cell"`
	Ori      float64 `json:"ori"`
	Response float64 `json:"df"`
}

// LoadOriSamples reads a JSON array of {"cell", "ori", "df"} objects.
func LoadOriSamples(path string) ([]OriSample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	var out []OriSample
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse samples %s: %w", path, err)
	}
	return out, nil
}

// TuningPoint is the mean response at one orientation.
type TuningPoint struct {
	Ori  float64
	Mean float64
	SEM  float64
	N    int
}

// TuningCurve groups a cell's responses by orientation, in ascending order.
// Grey-screen samples are skipped when dropGrey is set.
func TuningCurve(samples []OriSample, cell int, dropGrey bool) []TuningPoint {
	groups := make(map[float64][]float64)
	for _, s := range samples {
		if s.Cell != cell || (dropGrey && s.Ori < 0) {
			continue
		}
		groups[s.Ori] = append(groups[s.Ori], s.Response)
	}
	oris := make([]float64, 0, len(groups))
	for o := range groups {
		oris = append(oris, o)
	}
	sort.Float64s(oris)
	out := make([]TuningPoint, len(oris))
	for i, o := range oris {
		g := groups[o]
		out[i] = TuningPoint{Ori: o, Mean: stat.Mean(g, nil), SEM: SEM(g), N: len(g)}
	}
	return out
}
