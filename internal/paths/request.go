package paths

import "fmt"

const (
	// DefaultTiffBase is where raw imaging data lives unless overridden.
	DefaultTiffBase = "f:/experiments"
	// DefaultFrankenDrive is the drive letter of the primary share on windows.
	DefaultFrankenDrive = "x"
)

// DefaultKeys are the output names of the primary, mirror and raw roots.
var DefaultKeys = [3]string{"srv", "e", "tiffs"}

// Request identifies one experiment session plus the knobs that shape its roots.
// Zero-valued TiffBase, FrankenDrive and Keys fall back to the package defaults.
type Request struct {
	Root    string `json:"root" yaml:"root"` // result base on the mirrored share
	Subject string `json:"subject" yaml:"subject"`
	Date    string `json:"date" yaml:"date"`

	TiffBase     string    `json:"tiff_base,omitempty" yaml:"tiff_base,omitempty"`
	FrankenDrive string    `json:"franken_drive,omitempty" yaml:"franken_drive,omitempty"`
	MustExist    bool      `json:"must_exist" yaml:"must_exist"`
	Keys         [3]string `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// DefaultRequest returns a Request for the experiment with MustExist enabled.
func DefaultRequest(root, subject, date string) Request {
	return Request{
		Root:      root,
		Subject:   subject,
		Date:      date,
		MustExist: true,
	}
}

// withDefaults fills zero-valued fields without touching the caller's copy.
func (r Request) withDefaults() Request {
	if r.TiffBase == "" {
		r.TiffBase = DefaultTiffBase
	}
	if r.FrankenDrive == "" {
		r.FrankenDrive = DefaultFrankenDrive
	}
	if r.Keys == [3]string{} {
		r.Keys = DefaultKeys
	}
	return r
}

func (r Request) validateKeys(c Catalog) error {
	seen := make(map[string]bool, len(r.Keys))
	for _, k := range r.Keys {
		if k == "" {
			return fmt.Errorf("%w: empty drive key in %v", ErrInvalidRequest, r.Keys)
		}
		if seen[k] {
			return fmt.Errorf("%w: duplicate drive key %q", ErrInvalidRequest, k)
		}
		seen[k] = true
	}
	for _, spec := range c {
		if seen[spec.Name] {
			return fmt.Errorf("%w: drive key %q collides with an artifact name", ErrInvalidRequest, spec.Name)
		}
	}
	return nil
}
