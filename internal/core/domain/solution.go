package domain

import (
	"path/filepath"
	"strings"
)

// SolutionFormat identifies the on-disk encoding of a solution file.
type SolutionFormat string

const (
	// FormatSln is the line-oriented text solution format.
	FormatSln SolutionFormat = "sln"
	// FormatSlnx is the XML solution format.
	FormatSlnx SolutionFormat = "slnx"
)

// ProjectDescriptor is one project entry declared by a solution.
type ProjectDescriptor struct {
	// Name is the display name of the project. It is not guaranteed unique.
	Name string
	// RelativePath is the path of the project file relative to the solution directory,
	// using the platform separator.
	RelativePath string
	// Identity is the project GUID without braces. It is unique within a solution.
	Identity string
	// KindTag is the project type GUID without braces.
	KindTag string
}

// Solution is the parsed, immutable view of a solution file.
type Solution struct {
	// Path is the solution file path, empty when parsed from memory.
	Path string
	// BaseDir is the directory project paths are relative to.
	BaseDir string
	// Format is the encoding the solution was read from.
	Format SolutionFormat
	// Projects holds the declared projects in declaration order.
	Projects []ProjectDescriptor
	// Configurations holds the distinct configuration names in first-seen order.
	Configurations []string
	// StartupProject is the explicitly declared startup project, a name or an identity.
	StartupProject string
}

// ParseWarning describes a malformed solution line that was skipped.
type ParseWarning struct {
	Line   int
	Text   string
	Reason string
}

// ProjectByName returns the first project whose name equals name.
func (s *Solution) ProjectByName(name string) (ProjectDescriptor, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return ProjectDescriptor{}, false
}

// ProjectByIdentity returns the project whose identity equals id.
func (s *Solution) ProjectByIdentity(id string) (ProjectDescriptor, bool) {
	for _, p := range s.Projects {
		if p.Identity == id {
			return p, true
		}
	}
	return ProjectDescriptor{}, false
}

// ProjectFile returns the absolute path of the project file.
func (s *Solution) ProjectFile(p ProjectDescriptor) string {
	if filepath.IsAbs(p.RelativePath) {
		return p.RelativePath
	}
	return filepath.Join(s.BaseDir, p.RelativePath)
}

// ProjectDir returns the directory containing the project file.
func (s *Solution) ProjectDir(p ProjectDescriptor) string {
	return filepath.Dir(s.ProjectFile(p))
}

// NormalizeIdentity strips surrounding braces and whitespace from a GUID.
func NormalizeIdentity(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "{")
	id = strings.TrimSuffix(id, "}")
	return id
}

// SameIdentity compares two GUIDs ignoring braces and case.
func SameIdentity(a, b string) bool {
	a, b = NormalizeIdentity(a), NormalizeIdentity(b)
	return a != "" && strings.EqualFold(a, b)
}
