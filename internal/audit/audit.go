// Package audit implements the append-only denial event stream (spec §4.4,
// §5, §6). The enforcer and executor are the only producers; this package
// owns no policy and makes no decisions — it only records them.
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/opal-lang/gatectl/internal/types"
)

// Event is one record of the audit stream: emitted on every denial, never
// on an allow, and never containing a flag or environment value.
type Event struct {
	Timestamp    int64               `json:"timestamp"`
	ToolID       string              `json:"tool_id"`
	DenialReason types.DenialReason  `json:"denial_reason"`
	ProjectID    string              `json:"project_id"`
}

// Sink is the external collaborator spec §1/§5 describes: append-only,
// expected not to block the enforcer under normal load. Implementations
// must not mutate a prior Event.
type Sink interface {
	Emit(Event)
}

// NewEvent builds an Event from a denial, encoding the project id as hex so
// it is safe to log and diff without binary noise.
func NewEvent(now time.Time, toolID string, reason types.DenialReason, projectID types.ProjectID) Event {
	return Event{
		Timestamp:    now.Unix(),
		ToolID:       toolID,
		DenialReason: reason,
		ProjectID:    fmt.Sprintf("%x", projectID[:]),
	}
}

// MemorySink accumulates events in memory until read with Events; used by
// tests (the CLI streams through WriterSink instead).
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (m *MemorySink) Emit(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// WriterSink appends one JSON object per line to w — a simple, structured,
// append-only encoding suitable for a log file or stdout pipe.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (w *WriterSink) Emit(e Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	line, err := json.Marshal(e)
	if err != nil {
		return // the sink must not panic the enforcer over a marshal failure
	}
	_, _ = w.w.Write(append(line, '\n'))
}
