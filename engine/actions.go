package engine

import "time"

// Action is the sealed two-variant union of per-mode actions: a PlayAction
// in deck mode, a BidAction in dice mode. Actions are immutable once
// created.
type Action interface {
	Actor() string
	Mode() Mode

	isAction()
}

// ---------------------------------------------------------------------------
// PlayAction (deck mode)
// ---------------------------------------------------------------------------

// PlayAction is a deck-mode play: 1-3 hidden cards placed face down with a
// declared claim about their type. Truthful is derived once at construction
// (every card equals the claim or is the Joker wildcard) and never
// recomputed; challenge resolution reads this flag.
type PlayAction struct {
	PlayerID string
	Cards    []Card // actual cards played, hidden from other players
	Claim    Card
	Truthful bool
	At       time.Time
}

// NewPlayAction builds a play and fixes its truthfulness. The card slice is
// copied so later caller mutations cannot alter the recorded play.
func NewPlayAction(playerID string, cards []Card, claim Card) PlayAction {
	truthful := true
	for _, c := range cards {
		if c != claim && c != CardJoker {
			truthful = false
			break
		}
	}
	return PlayAction{
		PlayerID: playerID,
		Cards:    append([]Card(nil), cards...),
		Claim:    claim,
		Truthful: truthful,
		At:       time.Now(),
	}
}

// Actor returns the acting player's id.
func (a PlayAction) Actor() string { return a.PlayerID }

// Mode tags the action as deck mode.
func (a PlayAction) Mode() Mode { return ModeDeck }

func (a PlayAction) isAction() {}

// ---------------------------------------------------------------------------
// BidAction (dice mode)
// ---------------------------------------------------------------------------

// BidAction is a dice-mode bid: a claim that at least Count dice across all
// live players show Face.
type BidAction struct {
	PlayerID string
	Count    int
	Face     int
	At       time.Time
}

// NewBidAction builds a bid.
func NewBidAction(playerID string, count, face int) BidAction {
	return BidAction{PlayerID: playerID, Count: count, Face: face, At: time.Now()}
}

// Actor returns the acting player's id.
func (a BidAction) Actor() string { return a.PlayerID }

// Mode tags the action as dice mode.
func (a BidAction) Mode() Mode { return ModeDice }

func (a BidAction) isAction() {}

// HigherThan reports whether the bid outranks prev: strictly more dice, or
// the same count with a strictly higher face. Any bid outranks no bid (nil).
func (a BidAction) HigherThan(prev *BidAction) bool {
	if prev == nil {
		return true
	}
	if a.Count > prev.Count {
		return true
	}
	return a.Count == prev.Count && a.Face > prev.Face
}

// ---------------------------------------------------------------------------
// ChallengeResult
// ---------------------------------------------------------------------------

// ChallengeResult records one resolved challenge. Created exactly once per
// challenge, appended to the game's challenge history, never mutated.
type ChallengeResult struct {
	ChallengerID string
	ChallengedID string
	WasBluff     bool   // the challenged party was lying
	LoserID      string // challenged if bluffing, otherwise challenger
	Survived     bool   // roulette outcome for the loser
	Chamber      int    // fired chamber, 1-indexed pre-advance position
}
