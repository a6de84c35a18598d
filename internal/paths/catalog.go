package paths

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role names the drive root an artifact is searched under.
type Role string

const (
	RolePrimary Role = "primary"
	RoleMirror  Role = "mirror"
	RoleRaw     Role = "raw"
)

// ArtifactSpec describes how one named artifact is discovered.
// Pattern is a filepath.Match glob with optional placeholders:
// {date}, {date[2:]} (date minus its first two characters) and {subject}.
type ArtifactSpec struct {
	Name      string `json:"name" yaml:"name"`
	Root      Role   `json:"root" yaml:"root"`
	Pattern   string `json:"pattern" yaml:"pattern"`
	Recursive bool   `json:"recursive" yaml:"recursive"`
}

// Catalog is the ordered set of artifacts a resolution reports.
type Catalog []ArtifactSpec

type catalogFile struct {
	Artifacts Catalog `json:"artifacts" yaml:"artifacts"`
}

// DefaultCatalog returns the lab's artifact conventions. Each call returns a
// fresh slice.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "setupdaq", Root: RoleRaw, Pattern: "{date[2:]}*.mat"},
		{Name: "s2p", Root: RoleMirror, Pattern: "suite2p", Recursive: true},
		{Name: "clicked_cells", Root: RoleRaw, Pattern: "*clicked*.npy"},
		{Name: "mm3d", Root: RoleRaw, Pattern: "makeMasks3D_img.mat", Recursive: true},
		{Name: "img920", Root: RoleRaw, Pattern: "*920_*.tif*", Recursive: true},
		{Name: "img1020", Root: RoleRaw, Pattern: "*1020_*.tif*", Recursive: true},
		{Name: "img800", Root: RoleRaw, Pattern: "*800_*.tif*", Recursive: true},
		{Name: "ori", Root: RoleRaw, Pattern: "*ori*.mat", Recursive: true},
		{Name: "ret", Root: RoleRaw, Pattern: "*ret*.mat", Recursive: true},
		{Name: "si_online", Root: RoleRaw, Pattern: "*IntegrationRois*.csv", Recursive: true},
	}
}

// Names returns the artifact names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// Validate checks for unique names, known roots and well-formed patterns.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no artifacts", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c))
	for i, s := range c {
		if s.Name == "" {
			return fmt.Errorf("%w: artifact %d has no name", ErrInvalidCatalog, i)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate artifact %q", ErrInvalidCatalog, s.Name)
		}
		seen[s.Name] = true
		switch s.Root {
		case RolePrimary, RoleMirror, RoleRaw:
		default:
			return fmt.Errorf("%w: artifact %q has unknown root %q", ErrInvalidCatalog, s.Name, s.Root)
		}
		if s.Pattern == "" {
			return fmt.Errorf("%w: artifact %q has no pattern", ErrInvalidCatalog, s.Name)
		}
		if _, err := filepath.Match(expandPattern(s.Pattern, "", ""), ""); err != nil {
			return fmt.Errorf("%w: artifact %q pattern %q: %v", ErrInvalidCatalog, s.Name, s.Pattern, err)
		}
	}
	return nil
}

// LoadCatalog reads a catalog file (YAML or JSON) and validates it.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog parses a catalog from bytes. ext is a format hint (".json",
// ".yaml", ".yml"); when empty the format is detected from the content.
func ParseCatalog(data []byte, ext string) (Catalog, error) {
	ext = strings.ToLower(ext)
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	var f catalogFile
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	}
	if err := f.Artifacts.Validate(); err != nil {
		return nil, err
	}
	return f.Artifacts, nil
}

func expandPattern(pattern, subject, date string) string {
	short := ""
	if len(date) > 2 {
		short = date[2:]
	}
	return strings.NewReplacer(
		"{date[2:]}", short,
		"{date}", date,
		"{subject}", subject,
	).Replace(pattern)
}
