package ports

import (
	"context"

	"go.trai.ch/dbridge/internal/core/domain"
)

//go:generate mockgen -source=debugger.go -destination=mocks/mock_debugger.go -package=mocks

// DebuggerLocator finds the debugger executable.
type DebuggerLocator interface {
	// Locate returns the absolute path of the debugger selected by settings.
	// Implementations cache the first successful discovery for the process lifetime.
	Locate(ctx context.Context, settings domain.DebuggerSettings) (string, error)
}

// DebugSession hands a launch request to a debugger.
type DebugSession interface {
	// Start runs the debug session for req and blocks until it ends.
	Start(ctx context.Context, req *domain.LaunchRequest) error
}
