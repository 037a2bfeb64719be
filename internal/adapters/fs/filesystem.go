// Package fs provides the filesystem abstraction shared by the adapters.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts read-only filesystem operations for testability.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// ReadDir lists the entries of the directory at path, sorted by name.
	ReadDir(path string) ([]fs.DirEntry, error)
	// WalkDir walks the tree rooted at root. Paths handed to fn are rooted like root.
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OSFS implements FileSystem using the standard library.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is validated by caller
	return os.ReadFile(path)
}

// ReadDir lists the entries of the directory at path.
func (o *OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// WalkDir walks the tree rooted at root.
func (o *OSFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

// MapFSAdapter adapts an fs.FS such as fstest.MapFS to FileSystem for testing.
type MapFSAdapter struct {
	FS   fs.FS
	Root string // simulated root path
}

// NewMapFSAdapter creates a new MapFSAdapter with the given root path and filesystem.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{
		FS:   fsys,
		Root: root,
	}
}

// Stat returns file info for the given path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// ReadDir lists the entries of the directory at path.
func (m *MapFSAdapter) ReadDir(path string) ([]fs.DirEntry, error) {
	return fs.ReadDir(m.FS, m.toRelPath(path))
}

// WalkDir walks the tree rooted at root, reporting paths under the simulated root.
func (m *MapFSAdapter) WalkDir(root string, fn fs.WalkDirFunc) error {
	rel := m.toRelPath(root)
	return fs.WalkDir(m.FS, rel, func(path string, d fs.DirEntry, err error) error {
		return fn(m.toAbsPath(root, rel, path), d, err)
	})
}

// toRelPath converts an absolute path to a slash-separated path within the filesystem.
// If the path is outside the root, it is returned unchanged, which makes
// downstream fs operations fail with "file not found" errors.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return cleanRel(absPath)
	}

	if m.Root != "/" && absPath != m.Root && !strings.HasPrefix(absPath, m.Root+string(filepath.Separator)) {
		return absPath
	}

	rel := strings.TrimPrefix(absPath, m.Root)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	return cleanRel(rel)
}

// toAbsPath maps a path reported by fs.WalkDir back to the caller's form of root.
func (m *MapFSAdapter) toAbsPath(root, relRoot, path string) string {
	suffix := strings.TrimPrefix(path, relRoot)
	suffix = strings.TrimPrefix(suffix, "/")
	if relRoot == "." {
		suffix = path
		if suffix == "." {
			suffix = ""
		}
	}
	return filepath.Join(root, filepath.FromSlash(suffix))
}

func cleanRel(p string) string {
	p = filepath.ToSlash(filepath.Clean(p))
	if p == "" || p == "/" {
		return "."
	}
	return p
}
