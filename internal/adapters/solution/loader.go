package solution

import (
	"path/filepath"
	"sort"

	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Loader implements ports.SolutionLoader over a FileSystem.
type Loader struct {
	fs fs.FileSystem
}

// NewLoader creates a new Loader reading through fsys.
func NewLoader(fsys fs.FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Discover walks up from dir and returns the first solution file found.
// When a directory holds several, the first by name wins, .sln before .slnx for the same stem.
func (l *Loader) Discover(dir string) (string, error) {
	current := filepath.Clean(dir)
	for {
		if found := l.solutionIn(current); found != "" {
			return found, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", zerr.With(zerr.Wrap(domain.ErrSolutionNotFound, "searched up to the filesystem root"), "dir", dir)
		}
		current = parent
	}
}

func (l *Loader) solutionIn(dir string) string {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return ""
	}

	var candidates []string
	for _, e := range entries {
		if !e.IsDir() && domain.IsSolutionFile(e.Name()) {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.Slice(candidates, func(i, j int) bool {
		si, sj := stem(candidates[i]), stem(candidates[j])
		if si != sj {
			return si < sj
		}
		return filepath.Ext(candidates[i]) == domain.SolutionExt
	})
	return filepath.Join(dir, candidates[0])
}

// FindProject returns the project file in dir when there is exactly one.
func (l *Loader) FindProject(dir string) (string, error) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to list directory"), "dir", dir)
	}

	var found []string
	for _, e := range entries {
		if !e.IsDir() && domain.IsProjectFile(e.Name()) {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	if len(found) != 1 {
		return "", nil
	}
	return found[0], nil
}

// Load reads and parses the solution at path.
func (l *Loader) Load(path string) (*domain.Solution, []domain.ParseWarning, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrSolutionRead, err.Error()), "path", path)
	}

	sol, warnings, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, nil, zerr.With(err, "path", path)
	}
	sol.Path = path
	return sol, warnings, nil
}

// Inspect reads the project file at projectPath.
func (l *Loader) Inspect(projectPath string) (domain.ProjectInfo, error) {
	data, err := l.fs.ReadFile(projectPath)
	if err != nil {
		return domain.ProjectInfo{}, zerr.With(zerr.Wrap(domain.ErrProjectFileRead, err.Error()), "path", projectPath)
	}

	info, err := ParseProject(data)
	if err != nil {
		return domain.ProjectInfo{}, zerr.With(zerr.Wrap(domain.ErrProjectFileRead, err.Error()), "path", projectPath)
	}
	return info, nil
}

func stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
