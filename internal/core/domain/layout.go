package domain

import (
	"path/filepath"
	"strings"
)

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "dbridge.yaml"

	// CacheDirName is the name of the dbridge directory inside the user cache directory.
	CacheDirName = "dbridge"

	// AdaptersDirName is the name of the directory holding downloaded debug adapters.
	AdaptersDirName = "debug_adapters"

	// SolutionExt is the extension of text solution files.
	SolutionExt = ".sln"

	// SolutionXMLExt is the extension of XML solution files.
	SolutionXMLExt = ".slnx"

	// DebugOutputDir is the default debug output directory relative to a project.
	DebugOutputDir = "bin/Debug"

	// ReleaseOutputDir is the default release output directory relative to a project.
	ReleaseOutputDir = "bin/Release"

	// BuildTool is the name of the build tool executable.
	BuildTool = "dotnet"
)

// ProjectExts lists the project file extensions understood as standalone build targets.
var ProjectExts = []string{".csproj", ".fsproj", ".vbproj"}

// ArtifactExts lists the file extensions accepted as runnable build artifacts.
var ArtifactExts = []string{".dll", ".exe"}

// DefaultOutputDirs returns the output directories scanned when the build output names no artifact.
func DefaultOutputDirs() []string {
	return []string{DebugOutputDir, ReleaseOutputDir}
}

// DefaultAdaptersPath returns the directory that holds cached debug adapters under cacheRoot.
// It joins cacheRoot, dbridge and debug_adapters.
func DefaultAdaptersPath(cacheRoot string) string {
	return filepath.Join(cacheRoot, CacheDirName, AdaptersDirName)
}

// IsProjectFile reports whether path names a project file.
func IsProjectFile(path string) bool {
	return hasExt(path, ProjectExts)
}

// IsSolutionFile reports whether path names a solution file in either format.
func IsSolutionFile(path string) bool {
	return hasExt(path, []string{SolutionExt, SolutionXMLExt})
}

// IsArtifactFile reports whether path names a runnable assembly.
func IsArtifactFile(path string) bool {
	return hasExt(path, ArtifactExts)
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
