package engine

import "time"

// EventType tags entries in the game's chronological event stream.
type EventType string

const (
	EventRoundStart  EventType = "round_start"
	EventPlay        EventType = "play"
	EventBid         EventType = "bid"
	EventChallenge   EventType = "challenge"
	EventElimination EventType = "elimination"
	EventGameOver    EventType = "game_over"
)

// Event is one engine occurrence. Payload carries only public information:
// hidden holdings never ride an event.
type Event struct {
	Type     EventType              `json:"event"`
	PlayerID string                 `json:"player,omitempty"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
	At       time.Time              `json:"at"`
}

// Sink consumes the event stream. Emission is fire-and-forget: the engine
// never blocks on a sink and never observes a sink failure, so sinks doing
// real I/O must run it asynchronously and swallow their own errors.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(ev Event) { f(ev) }

// MultiSink fans one event out to several sinks in order.
type MultiSink []Sink

// Emit delivers ev to every non-nil member.
func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ev)
		}
	}
}

// emit stamps and delivers an event if a sink is attached.
func (g *Game) emit(typ EventType, playerID string, payload map[string]interface{}) {
	if g.sink == nil {
		return
	}
	g.sink.Emit(Event{
		Type:     typ,
		PlayerID: playerID,
		Payload:  payload,
		At:       time.Now(),
	})
}
