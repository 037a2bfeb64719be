package ports

import "go.trai.ch/dbridge/internal/core/domain"

// ArtifactLocator defines the interface for finding the runnable artifact of a build.
//
//go:generate mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactLocator interface {
	// Interpret reads the build output lines and returns the artifact of the queried project,
	// scanning its output directories when the output names none.
	Interpret(lines []string, query domain.ArtifactQuery) (*domain.BuildArtifact, error)
}
