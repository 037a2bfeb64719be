// Package artifact locates the assembly a build produced.
package artifact

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// outputMarker separates the project name from the produced file in build output.
	outputMarker = "->"
	// scanDepth covers <config>/<tfm>/<rid>.
	scanDepth = 2
)

// scanIgnores are output subdirectories holding reference or intermediate assemblies.
var scanIgnores = []string{"ref", "refint", "obj"}

// Interpreter implements ports.ArtifactLocator.
type Interpreter struct {
	fs     fs.FileSystem
	walker *fs.Walker
}

// NewInterpreter creates a new Interpreter reading through fsys.
func NewInterpreter(fsys fs.FileSystem, walker *fs.Walker) *Interpreter {
	return &Interpreter{fs: fsys, walker: walker}
}

// Interpret returns the artifact named by the build output, or the newest assembly
// in the output directories when the output names none that exists.
func (i *Interpreter) Interpret(lines []string, query domain.ArtifactQuery) (*domain.BuildArtifact, error) {
	if path, ok := fromOutput(lines, query); ok {
		if _, err := i.fs.Stat(path); err == nil {
			return &domain.BuildArtifact{Path: path, Source: domain.SourceParsed}, nil
		}
	}

	if path, ok := i.scan(query); ok {
		return &domain.BuildArtifact{Path: path, Source: domain.SourceFallback}, nil
	}

	err := zerr.Wrap(domain.ErrArtifactNotFound, "no artifact in build output or output directories")
	return nil, zerr.With(err, "project_root", query.ProjectRoot)
}

// outputLine is one `name -> path` line of build output.
type outputLine struct {
	project string
	path    string
}

// fromOutput picks the artifact path reported by the build.
// A line for the startup project wins; otherwise the last reported artifact.
func fromOutput(lines []string, query domain.ArtifactQuery) (string, bool) {
	var last, startup *outputLine
	for _, raw := range lines {
		line, ok := parseOutputLine(raw)
		if !ok {
			continue
		}
		if !filepath.IsAbs(line.path) {
			line.path = filepath.Join(query.ProjectRoot, line.path)
		}
		last = &line
		if query.StartupName != "" && strings.EqualFold(line.project, query.StartupName) {
			startup = &line
		}
	}

	switch {
	case startup != nil:
		return startup.path, true
	case last != nil:
		return last.path, true
	default:
		return "", false
	}
}

func parseOutputLine(raw string) (outputLine, bool) {
	clean := strings.TrimRight(ansi.Strip(raw), "\r\n")
	if i := strings.LastIndexByte(clean, '\r'); i >= 0 {
		clean = clean[i+1:]
	}

	project, path, ok := strings.Cut(clean, outputMarker)
	if !ok {
		return outputLine{}, false
	}
	project = strings.TrimSpace(project)
	path = strings.TrimSpace(path)
	if project == "" || !domain.IsArtifactFile(path) {
		return outputLine{}, false
	}
	return outputLine{project: project, path: path}, true
}

// scan walks the output directories and returns the newest assembly.
// Assemblies named after the startup project are preferred over unrelated ones.
func (i *Interpreter) scan(query domain.ArtifactQuery) (string, bool) {
	dirs := query.OutputDirs
	if len(dirs) == 0 {
		dirs = domain.DefaultOutputDirs()
	}

	var best, bestNamed candidate
	for _, dir := range dirs {
		root := filepath.Join(query.ProjectRoot, filepath.FromSlash(dir))
		for path := range i.walker.WalkFiles(root, scanIgnores, scanDepth) {
			if !domain.IsArtifactFile(path) {
				continue
			}
			info, err := i.fs.Stat(path)
			if err != nil {
				continue
			}
			c := candidate{path: path, modTime: info.ModTime()}
			best = newer(best, c)
			if query.StartupName != "" && strings.EqualFold(stem(path), query.StartupName) {
				bestNamed = newer(bestNamed, c)
			}
		}
	}

	switch {
	case bestNamed.path != "":
		return bestNamed.path, true
	case best.path != "":
		return best.path, true
	default:
		return "", false
	}
}

type candidate struct {
	path    string
	modTime time.Time
}

// newer keeps the first of equally old candidates so results follow walk order.
func newer(current, c candidate) candidate {
	if current.path == "" || c.modTime.After(current.modTime) {
		return c
	}
	return current
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
