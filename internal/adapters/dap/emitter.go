package dap

import (
	"context"
	"encoding/json"
	"io"

	"go.trai.ch/dbridge/internal/core/domain"
)

// Emitter implements ports.DebugSession by printing the launch configuration
// for an editor or another debugger front end to use.
type Emitter struct {
	out io.Writer
}

// NewEmitter creates an Emitter writing to out.
func NewEmitter(out io.Writer) *Emitter {
	return &Emitter{out: out}
}

// Start writes req as an indented JSON launch configuration.
func (e *Emitter) Start(_ context.Context, req *domain.LaunchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(req.Configuration())
}
