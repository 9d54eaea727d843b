// Package engine implements the Liar's Bar game rules.
//
// It is the authoritative state machine for both game modes: deck bluffing
// (play hidden cards against a round target and lie about them) and dice
// bluffing (escalating bids on the pooled hidden dice). Challenge resolution
// and the Russian-roulette elimination trial live here too. The package has
// no I/O and no locks; a single sequential caller drives it and observers
// receive value-copied views and events.
package engine

import (
	"fmt"
	"strings"
)

// Roster bounds.
const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Deck mode configuration.
const (
	HandSize        = 5  // cards dealt to each live player per round
	DeckSize        = 20 // 6+6+6 claimable + 2 jokers
	MinCardsPerPlay = 1
	MaxCardsPerPlay = 3
)

// Dice mode configuration.
const (
	DicePerPlayer = 5
	MinFace       = 1
	MaxFace       = 6
)

// Roulette configuration.
const Chambers = 6

// Mode selects which rule-set a game runs.
type Mode uint8

const (
	ModeDeck Mode = iota // card bluffing
	ModeDice             // dice bidding
)

// String returns the mode's wire name.
func (m Mode) String() string {
	switch m {
	case ModeDeck:
		return "deck"
	case ModeDice:
		return "dice"
	}
	return "unknown"
}

// ParseMode maps a mode name to its tag, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "deck", "liars_deck":
		return ModeDeck, nil
	case "dice", "liars_dice":
		return ModeDice, nil
	}
	return 0, fmt.Errorf("unknown game mode %q", s)
}

// Card is one deck-mode token. Joker is the wildcard: it satisfies any
// claim and can never be the basis of a successful challenge.
type Card uint8

const (
	CardQueen Card = iota
	CardKing
	CardAce
	CardJoker

	// CardNone marks the absence of a card (e.g. no round target yet).
	CardNone Card = 0xFF
)

// copiesOf returns how many copies of the card the deck carries.
func copiesOf(c Card) int {
	switch c {
	case CardQueen, CardKing, CardAce:
		return 6
	case CardJoker:
		return 2
	}
	return 0
}

// Claimable reports whether the card type may be a round target or claim.
// Jokers are played, never claimed.
func (c Card) Claimable() bool {
	return c == CardQueen || c == CardKing || c == CardAce
}

// String returns the display token for the card.
func (c Card) String() string {
	switch c {
	case CardQueen:
		return "Q"
	case CardKing:
		return "K"
	case CardAce:
		return "A"
	case CardJoker:
		return "Joker"
	}
	return "?"
}

// ParseCard maps a token name ("Q", "king", "JOKER", ...) to a Card,
// ignoring case.
func ParseCard(s string) (Card, error) {
	switch strings.ToLower(s) {
	case "q", "queen":
		return CardQueen, nil
	case "k", "king":
		return CardKing, nil
	case "a", "ace":
		return CardAce, nil
	case "j", "joker":
		return CardJoker, nil
	}
	return CardNone, fmt.Errorf("unknown card %q", s)
}

// ClaimableCards lists the card types a round target is drawn from.
func ClaimableCards() []Card {
	return []Card{CardQueen, CardKing, CardAce}
}

// Status is a player's standing in the game.
type Status uint8

const (
	StatusAlive Status = iota
	StatusEliminated
)

// String returns the status name.
func (s Status) String() string {
	if s == StatusEliminated {
		return "eliminated"
	}
	return "alive"
}

// Player is one roster entry. The roster is fixed for the game's lifetime:
// eliminated players are marked, never removed, and roster order defines
// turn rotation. Hand and Dice are private holdings; exactly one is
// populated depending on the game mode, and both reset every round.
type Player struct {
	ID       string
	Name     string
	Status   Status
	Survived int // roulette trials survived
	Hand     []Card
	Dice     []int
}

// Alive reports whether the player is still in the game.
func (p *Player) Alive() bool { return p.Status == StatusAlive }
