package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultResultsFolder is the sub-folder MakeResultsFolder creates.
const DefaultResultsFolder = "results"

// MakeResultsFolder creates root/subject/date/name, including parents, and
// returns its absolute path. An empty name means DefaultResultsFolder and "-"
// means no sub-folder at all.
func MakeResultsFolder(root, subject, date, name string) (string, error) {
	switch name {
	case "":
		name = DefaultResultsFolder
	case "-":
		name = ""
	}
	dir := filepath.Join(root, subject, date, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("paths: create results folder: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("paths: results folder: %w", err)
	}
	return abs, nil
}
