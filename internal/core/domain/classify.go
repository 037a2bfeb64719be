package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ProjectKind is the role a project plays when choosing what to debug.
type ProjectKind int

const (
	// KindExecutable is a project that produces a runnable program.
	KindExecutable ProjectKind = iota
	// KindLibrary is a project that produces a class library.
	KindLibrary
	// KindTest is a test project.
	KindTest
	// KindFolder is a solution folder, which has no build output.
	KindFolder
)

// String returns the lowercase name of the kind.
func (k ProjectKind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindLibrary:
		return "library"
	case KindTest:
		return "test"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// SolutionFolderKind is the project type GUID of solution folders.
const SolutionFolderKind = "2150E333-8FDC-42A3-9474-1A3956D46DE8"

// CSharpProjectKind is the project type GUID of SDK-style C# projects.
const CSharpProjectKind = "9A19103F-16F7-4668-BE54-9A1E7A4F7556"

// DefaultTestTokens are the name suffixes that mark a project as a test project.
var DefaultTestTokens = []string{"Test", "Tests", "Spec", "Specs"}

// DefaultLibraryTokens are the name suffixes that mark a project as a library.
var DefaultLibraryTokens = []string{"Lib", "Library", "Core", "Common", "Shared", "Abstractions", "Contracts"}

// Classifier decides the kind of a project from its name and type tag.
// It must be pure so that resolution stays deterministic.
type Classifier func(name, kindTag string) ProjectKind

// NewClassifier builds a name-based classifier.
// A name is split into segments on '.', '-', '_' and spaces. A token marks the project
// when it is a whole segment (case-insensitive) or ends a segment starting at a
// camel-case boundary, so IntegrationTests is a test and Contest is not.
// Test tokens are checked first.
func NewClassifier(testTokens, libraryTokens []string) Classifier {
	return func(name, kindTag string) ProjectKind {
		if SameIdentity(kindTag, SolutionFolderKind) {
			return KindFolder
		}
		segments := splitName(name)
		if anySegmentMatches(segments, testTokens) {
			return KindTest
		}
		if anySegmentMatches(segments, libraryTokens) {
			return KindLibrary
		}
		return KindExecutable
	}
}

// DefaultClassifier returns the classifier built from the default tokens.
func DefaultClassifier() Classifier {
	return NewClassifier(DefaultTestTokens, DefaultLibraryTokens)
}

// Refine returns a classifier that trusts what project files declare about themselves
// and falls back to c for projects without metadata. infos is keyed by project name.
func (c Classifier) Refine(infos map[string]ProjectInfo) Classifier {
	return func(name, kindTag string) ProjectKind {
		if info, ok := infos[name]; ok {
			if kind, known := info.Kind(); known {
				return kind
			}
		}
		return c(name, kindTag)
	}
}

func splitName(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || unicode.IsSpace(r)
	})
}

func anySegmentMatches(segments, tokens []string) bool {
	for _, seg := range segments {
		for _, tok := range tokens {
			if tok != "" && segmentMatches(seg, tok) {
				return true
			}
		}
	}
	return false
}

func segmentMatches(seg, tok string) bool {
	if strings.EqualFold(seg, tok) {
		return true
	}
	if len(seg) <= len(tok) || !strings.EqualFold(seg[len(seg)-len(tok):], tok) {
		return false
	}
	at := len(seg) - len(tok)
	first, _ := utf8.DecodeRuneInString(seg[at:])
	prev, _ := utf8.DecodeLastRuneInString(seg[:at])
	return unicode.IsUpper(first) && (unicode.IsLower(prev) || unicode.IsDigit(prev))
}
