// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/dbridge/internal/core/domain"
)

// Executor defines the interface for running build commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command in its working directory and streams the combined
	// stdout and stderr to out. It returns once the process exited and all output was written.
	//
	// A non-zero exit status is reported as an error carrying the exit_code metadata.
	Execute(ctx context.Context, cmd domain.BuildCommand, out io.Writer) error
}
