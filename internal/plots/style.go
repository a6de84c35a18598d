package plots

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Formats gonum can write.
var Formats = []string{"eps", "jpg", "jpeg", "pdf", "png", "svg", "tif", "tiff"}

// Style is the figure configuration applied explicitly to each plot.
type Style struct {
	Format      string  // default save format when a path has no extension
	Transparent bool    // transparent figure background
	WidthCM     float64 // figure size in centimetres
	HeightCM    float64
}

// DefaultStyle matches the lab's figure conventions: 4x4 in pdf on a
// transparent background.
func DefaultStyle() Style {
	return Style{Format: "pdf", Transparent: true, WidthCM: 4 * 2.54, HeightCM: 4 * 2.54}
}

// Warning reports a style setting that could not be honoured.
type Warning struct {
	Setting string
	Value   string
	Reason  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s=%q: %s", w.Setting, w.Value, w.Reason)
}

// Normalize replaces unusable settings with defaults and reports each one.
func (s Style) Normalize() (Style, []Warning) {
	def := DefaultStyle()
	var warns []Warning
	s.Format = strings.ToLower(strings.TrimPrefix(s.Format, "."))
	if !supported(s.Format) {
		warns = append(warns, Warning{Setting: "format", Value: s.Format, Reason: "unsupported, using " + def.Format})
		s.Format = def.Format
	}
	if s.WidthCM <= 0 {
		warns = append(warns, Warning{Setting: "width", Value: fmt.Sprint(s.WidthCM), Reason: "must be positive"})
		s.WidthCM = def.WidthCM
	}
	if s.HeightCM <= 0 {
		warns = append(warns, Warning{Setting: "height", Value: fmt.Sprint(s.HeightCM), Reason: "must be positive"})
		s.HeightCM = def.HeightCM
	}
	return s, warns
}

// Apply sets plot-level style fields.
func (s Style) Apply(p *plot.Plot) {
	if s.Transparent {
		p.BackgroundColor = color.Transparent
	}
}

// Save normalizes the style, applies it and writes p. A path without an
// extension gets the style's format. Warnings are logged and returned.
func (s Style) Save(p *plot.Plot, path string, log *slog.Logger) (string, []Warning, error) {
	s, warns := s.Normalize()
	if log != nil {
		for _, w := range warns {
			log.Warn("plot style fallback",
				slog.String("setting", w.Setting),
				slog.String("value", w.Value),
				slog.String("reason", w.Reason),
			)
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		path = path + "." + s.Format
	} else if !supported(strings.ToLower(ext)) {
		return "", warns, fmt.Errorf("plots: cannot save %s: unsupported format %q", path, ext)
	}
	s.Apply(p)
	if err := p.Save(CmToLength(s.WidthCM), CmToLength(s.HeightCM), path); err != nil {
		return "", warns, fmt.Errorf("plots: save %s: %w", path, err)
	}
	return path, warns, nil
}

// CmToInch converts centimetres to inches.
func CmToInch(cm float64) float64 { return cm / 2.54 }

// CmToLength converts centimetres to a vg length.
func CmToLength(cm float64) vg.Length { return vg.Length(cm) * vg.Centimeter }

func supported(format string) bool { return slices.Contains(Formats, format) }
