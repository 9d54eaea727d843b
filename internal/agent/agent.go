// Package agent implements the seat controllers: LLM-backed personas,
// their built-in fallback policies, and the interactive human seat.
package agent

import (
	"context"

	"github.com/raucvr/liarsbar/engine"
)

// Agent decides for one seat. DecideAction is called when the seat must
// play or bid; DecideChallenge when the previous action may be called
// out. Both receive the view redacted for this seat.
type Agent interface {
	PlayerID() string

	// DecideAction returns the play or bid for the current turn.
	DecideAction(ctx context.Context, view engine.View) (engine.Action, error)

	// DecideChallenge reports whether to call the last action a lie.
	DecideChallenge(ctx context.Context, view engine.View, last engine.Action) (bool, error)
}

// Named is implemented by agents with a display name beyond the seat id.
type Named interface {
	Name() string
}
