// Package format renders resolver output as terminal tables, Markdown, JSON
// or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"holofun/internal/display"
	"holofun/internal/paths"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // fixed-width terminal table
	Markdown             // GitHub-flavoured Markdown table
	JSON
	YAML
)

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "table", "ascii":
		return ASCII, nil
	case "md", "markdown":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return ASCII, fmt.Errorf("format: unknown output format %q", s)
	}
}

// Table wraps a go-pretty writer for the two textual table modes.
type Table struct {
	writer table.Writer
	mode   Mode
}

// NewTable returns a table that renders in m (ASCII unless m is Markdown).
func NewTable(m Mode) *Table {
	w := table.NewWriter()
	if m != Markdown {
		w.SetStyle(table.StyleLight)
	}
	return &Table{writer: w, mode: m}
}

// Header sets the column headers.
func (t *Table) Header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.writer.AppendHeader(row)
}

// Row appends a data row.
func (t *Table) Row(vals ...any) { t.writer.AppendRow(table.Row(vals)) }

func (t *Table) String() string {
	if t.mode == Markdown {
		return t.writer.RenderMarkdown()
	}
	return t.writer.Render()
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}

// Result renders a resolution. Table modes list one row per path so that
// multi-match artifacts stay readable.
func Result(res *paths.Result, m Mode) (string, error) {
	switch m {
	case JSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("format: json: %w", err)
		}
		return string(data) + "\n", nil
	case YAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("format: yaml: %w", err)
		}
		return string(data), nil
	}

	t := NewTable(m)
	t.Header("Key", "Name", "Found", "Path")
	for _, e := range res.Entries() {
		ps := e.Value.Paths()
		if len(ps) == 0 {
			t.Row(e.Name, display.Artifact(e.Name), BoolMark(false), paths.NotAvailable)
			continue
		}
		for i, p := range ps {
			if i == 0 {
				t.Row(e.Name, display.Artifact(e.Name), BoolMark(true), p)
				continue
			}
			t.Row("", "", "", p)
		}
	}
	return t.String() + "\n", nil
}
