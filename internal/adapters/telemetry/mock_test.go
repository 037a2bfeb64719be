package telemetry_test

import (
	"context"
	"sync"
	"time"
)

// recordingRenderer is a ports.Renderer that records the calls it receives in order.
type recordingRenderer struct {
	mu     sync.Mutex
	events []string
	plans  [][]string
	logs   map[string][]byte
	errs   []error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{logs: make(map[string][]byte)}
}

func (r *recordingRenderer) Start(context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                 { return nil }

func (r *recordingRenderer) OnPlanEmit(phases []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, phases)
	r.events = append(r.events, "plan")
}

func (r *recordingRenderer) OnPhaseStart(_, _, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start:"+name)
}

func (r *recordingRenderer) OnPhaseLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[spanID] = append(r.logs[spanID], data...)
	r.events = append(r.events, "log")
}

func (r *recordingRenderer) OnPhaseComplete(_ string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
	r.events = append(r.events, "complete")
}

func (r *recordingRenderer) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recordingRenderer) output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []byte
	for _, data := range r.logs {
		all = append(all, data...)
	}
	return string(all)
}
