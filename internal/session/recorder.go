package session

import (
	"github.com/raucvr/liarsbar/engine"
	"github.com/raucvr/liarsbar/internal/memory"
)

// Recorder captures the public event stream for archival. Register it
// alongside the agents in the game's sink.
type Recorder struct {
	events []memory.Event
}

func NewRecorder() *Recorder { return &Recorder{} }

// Emit converts an engine event into archive form.
func (r *Recorder) Emit(ev engine.Event) {
	r.events = append(r.events, memory.Event{
		Type:      string(ev.Type),
		PlayerID:  ev.PlayerID,
		Details:   ev.Payload,
		Timestamp: ev.At,
	})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []memory.Event {
	out := make([]memory.Event, len(r.events))
	copy(out, r.events)
	return out
}
