// Package memory persists what each agent saw: a local journal of
// per-game event files, optional Redis recall across games, and an
// optional Postgres archive of finished games.
package memory

import "time"

// Event is one remembered game moment, shaped for later retrieval.
// Details is free-form but each constructor fixes its keys.
type Event struct {
	Type      string                 `json:"event_type"`
	PlayerID  string                 `json:"player_id,omitempty"`
	Details   map[string]interface{} `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
}

func newEvent(typ, playerID string, details map[string]interface{}) Event {
	if details == nil {
		details = make(map[string]interface{})
	}
	return Event{
		Type:      typ,
		PlayerID:  playerID,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// NewBluffEvent records a play or bid and whether it was honest.
// Caught is nil until the table's reaction is known.
func NewBluffEvent(playerID string, wasBluff bool, cardsOrBid, claim string, caught *bool, round int) Event {
	return newEvent("bluff", playerID, map[string]interface{}{
		"was_bluff":    wasBluff,
		"cards_or_bid": cardsOrBid,
		"claim":        claim,
		"caught":       caught,
		"round":        round,
	})
}

// NewChallengeEvent records a challenge and how the roulette went.
func NewChallengeEvent(challengerID, challengedID string, wasCorrect bool, loserID string, survived bool, round int) Event {
	return newEvent("challenge", challengerID, map[string]interface{}{
		"challenged":        challengedID,
		"correct_challenge": wasCorrect,
		"loser":             loserID,
		"survived_roulette": survived,
		"round":             round,
	})
}

// NewEliminationEvent records a player leaving the game.
func NewEliminationEvent(playerID, eliminatedBy string, round int) Event {
	return newEvent("elimination", playerID, map[string]interface{}{
		"eliminated_by": eliminatedBy,
		"round":         round,
	})
}

// NewGameOverEvent records the final result keyed by the winner.
func NewGameOverEvent(winnerID string, totalRounds int, playerStats map[string]interface{}) Event {
	return newEvent("game_over", winnerID, map[string]interface{}{
		"total_rounds": totalRounds,
		"player_stats": playerStats,
	})
}
