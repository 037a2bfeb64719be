package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker yields files below a root directory with depth and ignore limits.
type Walker struct {
	fsys FileSystem
}

// NewWalker creates a new Walker over fsys.
func NewWalker(fsys FileSystem) *Walker {
	return &Walker{fsys: fsys}
}

// WalkFiles yields the files below root that are at most maxDepth directories deep,
// skipping directories whose name matches one of ignores. A maxDepth below zero means unlimited.
// A missing root yields nothing.
func (w *Walker) WalkFiles(root string, ignores []string, maxDepth int) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = w.fsys.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return filepath.SkipAll
				}
				return nil
			}

			if d.IsDir() {
				if path == root {
					return nil
				}
				if skip := w.shouldSkipDir(d, ignores); skip != nil {
					return skip
				}
				if maxDepth >= 0 && depth(root, path) > maxDepth {
					return filepath.SkipDir
				}
				return nil
			}

			if maxDepth >= 0 && depth(root, filepath.Dir(path)) > maxDepth {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir returns filepath.SkipDir if the directory matches an ignore pattern.
func (w *Walker) shouldSkipDir(d fs.DirEntry, ignores []string) error {
	name := d.Name()

	if name == ".git" {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return filepath.SkipDir
		}
	}
	return nil
}

// depth counts the directories between root and dir.
func depth(root, dir string) int {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
