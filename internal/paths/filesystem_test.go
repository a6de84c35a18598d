package paths

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

// mapFilesystem serves drive-letter paths such as "f:/experiments" from an
// in-memory tree, so the windows layout resolves on any host.
type mapFilesystem struct{ tree fstest.MapFS }

func fsName(name string) string { return strings.TrimSuffix(path.Clean(name), "/") }

func (m mapFilesystem) Stat(name string) (fs.FileInfo, error) { return fs.Stat(m.tree, fsName(name)) }

func (m mapFilesystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(m.tree, fsName(name))
}

func (m mapFilesystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	base := fsName(root)
	return fs.WalkDir(m.tree, base, func(p string, d fs.DirEntry, err error) error {
		return fn(root+strings.TrimPrefix(p, base), d, err)
	})
}

func windowsTree() fstest.MapFS {
	return fstest.MapFS{
		"x:/lab.txt":                                  {},
		"e:/holo/M01/220101/plane0/suite2p/ops.npy":   {},
		"f:/experiments/M01/220101/0101_daq.mat":      {},
		"f:/experiments/M01/220101/ori/M01_ori_1.mat": {},
		"f:/experiments/M01/220101/ori/M01_ori_2.mat": {},
		"f:/experiments/M01/220101/deep/cells.txt":    {},
	}
}

func TestResolve_WindowsOnFakeFilesystem(t *testing.T) {
	r, err := New(WithPlatform(Windows{}), WithFilesystem(mapFilesystem{tree: windowsTree()}))
	if err != nil {
		t.Fatal(err)
	}
	res, err := r.Resolve(context.Background(), DefaultRequest("holo", "M01", "220101"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	got := map[string][]string{}
	for _, e := range res.Entries() {
		got[e.Name] = e.Value.Paths()
	}
	want := map[string][]string{
		"srv":      {"x:/"},
		"e":        {"e:/holo/M01/220101"},
		"tiffs":    {"f:/experiments/M01/220101"},
		"setupdaq": {"f:/experiments/M01/220101/0101_daq.mat"},
		"s2p":      {"e:/holo/M01/220101/plane0/suite2p"},
		"ori": {
			"f:/experiments/M01/220101/ori/M01_ori_1.mat",
			"f:/experiments/M01/220101/ori/M01_ori_2.mat",
		},
	}
	for name, ps := range want {
		if diff := cmp.Diff(ps, got[name]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}
	for _, name := range []string{"clicked_cells", "mm3d", "img920", "img1020", "img800", "ret", "si_online"} {
		if len(got[name]) != 0 {
			t.Errorf("%s = %v, want not available", name, got[name])
		}
	}
}

func TestResolve_WindowsMissingServerDrive(t *testing.T) {
	tree := windowsTree()
	delete(tree, "x:/lab.txt")
	r, err := New(WithPlatform(Windows{}), WithFilesystem(mapFilesystem{tree: tree}))
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Resolve(context.Background(), DefaultRequest("holo", "M01", "220101"))
	var missing *MissingRootsError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingRootsError", err)
	}
	if diff := cmp.Diff([]MissingRoot{{Key: "srv", Path: "x:/"}}, missing.Missing); diff != "" {
		t.Errorf("missing roots mismatch (-want +got):\n%s", diff)
	}
}
