// Package replay records flushed event streams as JSONL for later
// playback. It is a downstream consumer of the wire contract: flat
// records dispatched on kind, tolerant of unknown fields.
package replay

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/15195999826/LomoMarketplace-sub003/internal/event"
)

// Header is the first line of a replay log.
type Header struct {
	RunID  string `json:"runId"`
	TickMs int64  `json:"tickMs"`
}

// Recorder streams events to one writer, one JSON object per line.
type Recorder struct {
	enc     *json.Encoder
	written int
}

// NewRecorder wraps a writer. The caller owns closing it.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: json.NewEncoder(w)}
}

// WriteHeader emits the run header line.
func (r *Recorder) WriteHeader(h Header) error {
	if err := r.enc.Encode(h); err != nil {
		return fmt.Errorf("writing replay header: %w", err)
	}
	return nil
}

// Record appends one tick's flushed events in order.
func (r *Recorder) Record(events []event.Event) error {
	for _, ev := range events {
		if err := r.enc.Encode(ev); err != nil {
			return fmt.Errorf("writing replay event %s: %w", ev.Kind, err)
		}
		r.written++
	}
	return nil
}

// Written returns how many events have been recorded.
func (r *Recorder) Written() int {
	return r.written
}
