package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMakeResultsFolder(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name string
		want string
	}{
		{"", filepath.Join(root, "M01", "220101", "results")},
		{"figures", filepath.Join(root, "M01", "220101", "figures")},
		{"-", filepath.Join(root, "M01", "220101")},
	}
	for _, tt := range tests {
		got, err := MakeResultsFolder(root, "M01", "220101", tt.name)
		if err != nil {
			t.Fatalf("MakeResultsFolder(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("MakeResultsFolder(%q) = %s, want %s", tt.name, got, tt.want)
		}
		if info, err := os.Stat(got); err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", got, err)
		}
	}
}

func TestMakeResultsFolder_Idempotent(t *testing.T) {
	root := t.TempDir()
	if _, err := MakeResultsFolder(root, "M01", "220101", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := MakeResultsFolder(root, "M01", "220101", ""); err != nil {
		t.Fatalf("second call: %v", err)
	}
}
