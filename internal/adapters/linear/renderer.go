// Package linear provides a synchronous, line-buffered renderer for scenario phases.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/dbridge/internal/ui/output"
	"go.trai.ch/dbridge/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological, prefixed lines.
// Once a plan was emitted, spans whose names are not part of it are not shown.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu     sync.Mutex
	plan   []string
	phases map[string]*phaseState // spanID -> phase
}

type phaseState struct {
	name      string
	index     int
	hidden    bool
	startTime time.Time
	pending   bytes.Buffer
}

// NewRenderer creates a Renderer writing to w, or stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		w:      w,
		output: output.NewWithProfile(w, output.ColorProfileANSI),
		phases: make(map[string]*phaseState),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop prints partial lines that are still buffered.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, phase := range r.phases {
		r.flushLocked(phase)
	}
	return nil
}

// OnPlanEmit prints the phases about to run.
func (r *Renderer) OnPlanEmit(phases []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plan = slices.Clone(phases)
	arrow := " " + style.Arrow + " "
	_, _ = fmt.Fprintf(r.w, "%s %s\n", r.output.String("plan:").Faint(), strings.Join(phases, arrow))
}

// OnPhaseStart prints a phase start line.
func (r *Renderer) OnPhaseStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	phase := &phaseState{name: name, startTime: startTime}
	if len(r.plan) > 0 {
		phase.index = slices.Index(r.plan, name) + 1
		phase.hidden = phase.index == 0
	}
	r.phases[spanID] = phase

	if phase.hidden {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s started\n", r.prefix(phase))
}

// OnPhaseLog buffers data and prints complete lines with the phase prefix.
func (r *Renderer) OnPhaseLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	phase, ok := r.phases[spanID]
	if !ok || phase.hidden {
		return
	}

	phase.pending.Write(data)
	for {
		idx := bytes.IndexByte(phase.pending.Bytes(), '\n')
		if idx < 0 {
			return
		}
		line := phase.pending.Next(idx + 1)
		r.printLineLocked(phase, line)
	}
}

// OnPhaseComplete flushes the phase and prints its outcome.
func (r *Renderer) OnPhaseComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	phase, ok := r.phases[spanID]
	if !ok {
		return
	}
	delete(r.phases, spanID)
	if phase.hidden {
		return
	}

	r.flushLocked(phase)

	duration := endTime.Sub(phase.startTime).Round(time.Millisecond)
	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed)
		_, _ = fmt.Fprintf(r.w, "%s %s failed after %v: %v\n", r.prefix(phase), symbol, duration, err)
		return
	}
	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen)
	_, _ = fmt.Fprintf(r.w, "%s %s done in %v\n", r.prefix(phase), symbol, duration)
}

func (r *Renderer) prefix(phase *phaseState) termenv.Style {
	label := "[" + phase.name + "]"
	if phase.index > 0 {
		label = fmt.Sprintf("[%d/%d %s]", phase.index, len(r.plan), phase.name)
	}
	return r.output.String(label).Faint()
}

// flushLocked prints a buffered partial line. Must be called with r.mu held.
func (r *Renderer) flushLocked(phase *phaseState) {
	if phase.pending.Len() > 0 {
		r.printLineLocked(phase, phase.pending.Bytes())
		phase.pending.Reset()
	}
}

// printLineLocked prints one output line. Must be called with r.mu held.
func (r *Renderer) printLineLocked(phase *phaseState, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s %s\n", r.prefix(phase), line)
}
