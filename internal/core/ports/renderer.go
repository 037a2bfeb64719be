package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes any buffered output.
	Stop() error

	// OnPlanEmit is called with the phases that are about to run, in order.
	OnPlanEmit(phases []string)

	// OnPhaseStart is called when a phase begins.
	OnPhaseStart(spanID, parentID, name string, startTime time.Time)

	// OnPhaseLog is called when a phase emits output.
	// data may contain partial lines or ANSI sequences.
	OnPhaseLog(spanID string, data []byte)

	// OnPhaseComplete is called when a phase finishes. err is nil on success.
	OnPhaseComplete(spanID string, endTime time.Time, err error)
}
