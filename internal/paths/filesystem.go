package paths

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem is the read-only view of storage the resolver needs.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OSFilesystem reads the host filesystem.
type OSFilesystem struct{}

func (OSFilesystem) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (OSFilesystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (OSFilesystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
