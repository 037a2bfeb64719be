package domain

// ArtifactSource records how a build artifact was located.
type ArtifactSource string

const (
	// SourceParsed means the path was read from the build output.
	SourceParsed ArtifactSource = "parsed-from-output"
	// SourceFallback means the path was found by scanning the output directories.
	SourceFallback ArtifactSource = "directory-scan-fallback"
)

// BuildArtifact is the runnable file produced by a successful build.
type BuildArtifact struct {
	Path   string
	Source ArtifactSource
}

// ArtifactQuery describes which build artifact to look for.
type ArtifactQuery struct {
	// ProjectRoot is the directory of the startup project.
	ProjectRoot string
	// StartupName is the name of the startup project. Empty matches any project.
	StartupName string
	// OutputDirs are the directories scanned under ProjectRoot when the build output names no artifact.
	// Empty means DefaultOutputDirs.
	OutputDirs []string
}
