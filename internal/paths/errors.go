package paths

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRoots is matched by a *MissingRootsError when one or more drive
	// roots do not exist.
	ErrMissingRoots = errors.New("paths: missing roots")

	// ErrInvalidRequest is returned when output keys are empty, duplicated or
	// collide with a catalog name.
	ErrInvalidRequest = errors.New("paths: invalid request")

	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("paths: invalid catalog")
)

// MissingRoot is one drive root that failed the existence check.
type MissingRoot struct {
	Key  string
	Path string
}

// MissingRootsError lists every drive root that was absent, not just the first.
type MissingRootsError struct {
	Missing []MissingRoot
}

func (e *MissingRootsError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		parts[i] = fmt.Sprintf("%s=%s", m.Key, m.Path)
	}
	return fmt.Sprintf("paths: could not find %d of the drive roots: %s", len(e.Missing), strings.Join(parts, ", "))
}

// Is reports ErrMissingRoots as a match so callers can test with errors.Is.
func (e *MissingRootsError) Is(target error) bool { return target == ErrMissingRoots }

// Keys returns the output keys of the missing roots in drive order.
func (e *MissingRootsError) Keys() []string {
	keys := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		keys[i] = m.Key
	}
	return keys
}
