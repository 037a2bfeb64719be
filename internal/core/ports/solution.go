package ports

import "go.trai.ch/dbridge/internal/core/domain"

// SolutionLoader defines the interface for reading solutions and project files.
//
//go:generate mockgen -source=solution.go -destination=mocks/mock_solution.go -package=mocks
type SolutionLoader interface {
	// Discover walks up from dir and returns the path of the nearest solution file.
	Discover(dir string) (string, error)

	// FindProject returns the single project file in dir, or "" when dir holds none.
	FindProject(dir string) (string, error)

	// Load reads and parses the solution at path.
	// Malformed project lines are skipped and reported as warnings.
	Load(path string) (*domain.Solution, []domain.ParseWarning, error)

	// Inspect reads what a project file declares about itself.
	Inspect(projectPath string) (domain.ProjectInfo, error)
}
