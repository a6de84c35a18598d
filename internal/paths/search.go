package paths

import (
	"context"
	"io/fs"
	"path/filepath"
)

// search returns the entries under root whose base name matches pattern.
// A shallow search only looks at root's children; a recursive one looks at
// every descendant. Matches come back in lexical walk order. A missing or
// unreadable root yields no matches.
func search(ctx context.Context, fsys Filesystem, root, pattern string, recursive bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !recursive {
		entries, err := fsys.ReadDir(root)
		if err != nil {
			return nil, nil
		}
		var out []string
		for _, e := range entries {
			if ok, _ := filepath.Match(pattern, e.Name()); ok {
				out = append(out, filepath.Join(root, e.Name()))
			}
		}
		return out, nil
	}

	var out []string
	err := fsys.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil || p == root {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
