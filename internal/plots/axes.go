package plots

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
)

// ErrUnknownOp is returned for an axis operation outside the supported set.
var ErrUnknownOp = errors.New("plots: unknown axis operation")

// Op names one supported axis operation.
type Op string

const (
	OpTitle  Op = "title"
	OpXLabel Op = "xlabel"
	OpYLabel Op = "ylabel"
	OpXLim   Op = "xlim"
	OpYLim   Op = "ylim"
	OpLegend Op = "legend"
)

// Update is one axis operation and its raw argument.
type Update struct {
	Op  Op
	Arg string
}

type setter func(p *plot.Plot, arg string) error

var setters = map[Op]setter{
	OpTitle:  func(p *plot.Plot, arg string) error { p.Title.Text = arg; return nil },
	OpXLabel: func(p *plot.Plot, arg string) error { p.X.Label.Text = arg; return nil },
	OpYLabel: func(p *plot.Plot, arg string) error { p.Y.Label.Text = arg; return nil },
	OpXLim:   func(p *plot.Plot, arg string) error { return setLimits(&p.X, arg) },
	OpYLim:   func(p *plot.Plot, arg string) error { return setLimits(&p.Y, arg) },
	OpLegend: setLegend,
}

// Ops lists the supported operations, sorted.
func Ops() []Op {
	out := make([]Op, 0, len(setters))
	for op := range setters {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseUpdate parses "op=arg", for example "xlim=0,10" or "title=V1 cells".
func ParseUpdate(s string) (Update, error) {
	op, arg, ok := strings.Cut(s, "=")
	if !ok {
		return Update{}, fmt.Errorf("plots: update %q must be op=arg", s)
	}
	u := Update{Op: Op(strings.ToLower(strings.TrimSpace(op))), Arg: arg}
	if _, ok := setters[u.Op]; !ok {
		return Update{}, fmt.Errorf("%w %q", ErrUnknownOp, op)
	}
	return u, nil
}

// UpdateAll applies every update to every plot, stopping at the first error.
func UpdateAll(plots []*plot.Plot, updates ...Update) error {
	for _, u := range updates {
		set, ok := setters[u.Op]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownOp, u.Op)
		}
		for _, p := range plots {
			if err := set(p, u.Arg); err != nil {
				return fmt.Errorf("%s: %w", u.Op, err)
			}
		}
	}
	return nil
}

func setLimits(ax *plot.Axis, arg string) error {
	lo, hi, ok := strings.Cut(arg, ",")
	if !ok {
		return fmt.Errorf("limits %q must be min,max", arg)
	}
	vmin, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return fmt.Errorf("limits min: %w", err)
	}
	vmax, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return fmt.Errorf("limits max: %w", err)
	}
	if vmin >= vmax {
		return fmt.Errorf("limits %q: min must be below max", arg)
	}
	ax.Min, ax.Max = vmin, vmax
	return nil
}

func setLegend(p *plot.Plot, arg string) error {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "top-right", "":
		p.Legend.Top, p.Legend.Left = true, false
	case "top-left":
		p.Legend.Top, p.Legend.Left = true, true
	case "bottom-right":
		p.Legend.Top, p.Legend.Left = false, false
	case "bottom-left":
		p.Legend.Top, p.Legend.Left = false, true
	default:
		return fmt.Errorf("legend position %q", arg)
	}
	return nil
}
