// Package solution reads .NET solution and project files.
package solution

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	projectPrefix       = `Project("`
	configSectionPrefix = "GlobalSection(SolutionConfigurationPlatforms)"
	endSection          = "EndGlobalSection"
	startupMarker       = "StartupProject"
	maxLineSize         = 1024 * 1024
)

// defaultConfigurations are reported when a solution declares none.
var defaultConfigurations = []string{"Debug", "Release"}

// Parse parses solution text. XML content is read as .slnx, anything else as .sln.
// Project paths are relative to baseDir.
//
// Malformed project entries and entries repeating an earlier project identity
// are skipped and reported as warnings.
// Empty, whitespace-only or binary input is an error.
func Parse(text []byte, baseDir string) (*domain.Solution, []domain.ParseWarning, error) {
	text = bytes.TrimPrefix(text, []byte("\ufeff"))

	if len(bytes.TrimSpace(text)) == 0 {
		return nil, nil, zerr.Wrap(domain.ErrSolutionParse, "solution is empty")
	}
	if line, ok := firstBinaryLine(text); ok {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrSolutionParse, "solution is not text"), "line", line)
	}

	if isXML(text) {
		return ParseSlnx(text, baseDir)
	}
	return ParseSln(text, baseDir)
}

// ParseSln parses the line-oriented text solution format.
func ParseSln(text []byte, baseDir string) (*domain.Solution, []domain.ParseWarning, error) {
	sol := &domain.Solution{
		BaseDir: baseDir,
		Format:  domain.FormatSln,
	}
	var warnings []domain.ParseWarning
	configs := newOrderedSet()
	identities := newOrderedSet()

	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	inConfigSection := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, projectPrefix):
			p, reason := parseProjectLine(line)
			if reason != "" {
				warnings = append(warnings, domain.ParseWarning{Line: lineNo, Text: line, Reason: reason})
				continue
			}
			if !identities.add(identityKey(p.Identity)) {
				warnings = append(warnings, domain.ParseWarning{Line: lineNo, Text: line, Reason: duplicateReason(p.Identity)})
				continue
			}
			sol.Projects = append(sol.Projects, p)

		case strings.HasPrefix(line, configSectionPrefix):
			inConfigSection = true

		case inConfigSection && strings.HasPrefix(line, endSection):
			inConfigSection = false

		case inConfigSection:
			if name, _, ok := strings.Cut(line, "|"); ok && strings.TrimSpace(name) != "" {
				configs.add(strings.TrimSpace(name))
			}

		case strings.Contains(line, startupMarker):
			if startup := parseStartupLine(line); startup != "" {
				sol.StartupProject = startup
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrSolutionParse, err.Error()), "line", lineNo+1)
	}

	sol.Configurations = configs.items()
	if len(sol.Configurations) == 0 {
		sol.Configurations = append([]string(nil), defaultConfigurations...)
	}
	return sol, warnings, nil
}

// parseProjectLine reads `Project("{type}") = "name", "path", "{guid}"`.
// It returns a non-empty reason when the line is malformed.
func parseProjectLine(line string) (domain.ProjectDescriptor, string) {
	head, tail, ok := strings.Cut(line, "=")
	if !ok {
		return domain.ProjectDescriptor{}, "missing '='"
	}

	kindTag, ok := extractGUID(head)
	if !ok {
		return domain.ProjectDescriptor{}, "missing project type guid"
	}

	fields := quotedFields(tail)
	if len(fields) < 3 {
		return domain.ProjectDescriptor{}, fmt.Sprintf("expected name, path and guid, found %d field(s)", len(fields))
	}

	name := strings.TrimSpace(fields[0])
	path := strings.TrimSpace(fields[1])
	if name == "" {
		return domain.ProjectDescriptor{}, "empty project name"
	}
	if path == "" {
		return domain.ProjectDescriptor{}, "empty project path"
	}

	identity, ok := extractGUID(fields[2])
	if !ok {
		return domain.ProjectDescriptor{}, "malformed project guid"
	}

	return domain.ProjectDescriptor{
		Name:         name,
		RelativePath: normalizePath(path),
		Identity:     identity,
		KindTag:      kindTag,
	}, ""
}

// parseStartupLine returns the guid or quoted name declared on a StartupProject line.
func parseStartupLine(line string) string {
	if guid, ok := extractGUID(line); ok {
		return guid
	}
	if fields := quotedFields(line); len(fields) > 0 {
		return strings.TrimSpace(fields[len(fields)-1])
	}
	_, value, ok := strings.Cut(line, "=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

// extractGUID returns the content of the first {...} group in s.
func extractGUID(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(s[start:], '}')
	if end < 0 {
		return "", false
	}
	guid := strings.TrimSpace(s[start+1 : start+end])
	return guid, guid != ""
}

// quotedFields returns the contents of the double-quoted strings in s, in order.
func quotedFields(s string) []string {
	var fields []string
	for {
		start := strings.IndexByte(s, '"')
		if start < 0 {
			return fields
		}
		end := strings.IndexByte(s[start+1:], '"')
		if end < 0 {
			return fields
		}
		fields = append(fields, s[start+1:start+1+end])
		s = s[start+1+end+1:]
	}
}

// identityKey folds a GUID so that braces and case do not distinguish projects.
func identityKey(id string) string {
	return strings.ToUpper(domain.NormalizeIdentity(id))
}

func duplicateReason(id string) string {
	return "duplicate project guid " + id
}

// normalizePath converts a solution path, which uses backslashes, to the platform separator.
func normalizePath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

func isXML(text []byte) bool {
	trimmed := bytes.TrimSpace(text)
	return bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<Solution"))
}

// firstBinaryLine reports the 1-based line of the first NUL byte or invalid UTF-8 sequence.
func firstBinaryLine(text []byte) (int, bool) {
	for i, line := range bytes.Split(text, []byte("\n")) {
		if bytes.IndexByte(line, 0) >= 0 || !utf8.Valid(line) {
			return i + 1, true
		}
	}
	return 0, false
}

type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// add appends v unless it is already present and reports whether it was added.
func (s *orderedSet) add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

func (s *orderedSet) items() []string {
	return s.order
}
