package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Config describes a new game. Players supply id and name only; holdings
// start empty and are dealt by SetupRound. A zero Seed draws a random one.
// Sink may be nil.
type Config struct {
	Mode    Mode
	Players []Player
	Seed    uint64
	Sink    Sink
}

// Game is the authoritative state machine. It owns the roster, the single
// active rule-set, the roulette, and all histories. It is not goroutine
// safe: one sequential control loop drives it, and one action or challenge
// resolution is fully applied before the next begins. Observers get
// value-copied Views, never the live state.
type Game struct {
	mode    Mode
	seed    uint64
	round   int // 1-based once SetupRound has run
	turn    int // genuine advances within the current round
	current int // index into players

	players []*Player

	// Exactly one rule-set is non-nil, selected by mode at construction.
	deck *DeckRules
	dice *DiceRules

	roulette *Roulette

	// Per-round action history for the active mode; cleared by SetupRound
	// so a fresh round has nothing to challenge. Challenge history spans
	// the whole game.
	plays      []PlayAction
	bids       []BidAction
	challenges []ChallengeResult

	over   bool
	winner string

	sink Sink
}

// NewGame validates the config and builds a game. The mode and roulette
// draw from independent rng streams derived from the seed, so shuffles,
// rolls, targets, and bullet positions replay identically for a given seed.
func NewGame(cfg Config) (*Game, error) {
	if cfg.Mode != ModeDeck && cfg.Mode != ModeDice {
		return nil, fmt.Errorf("unknown game mode %d", cfg.Mode)
	}
	if n := len(cfg.Players); n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("need %d-%d players, got %d", MinPlayers, MaxPlayers, n)
	}

	seen := make(map[string]bool, len(cfg.Players))
	players := make([]*Player, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		if p.ID == "" {
			return nil, fmt.Errorf("player with empty id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate player id %q", p.ID)
		}
		seen[p.ID] = true
		players = append(players, &Player{ID: p.ID, Name: p.Name})
	}

	seed := cfg.Seed
	if seed == 0 {
		s, err := randomSeed()
		if err != nil {
			return nil, fmt.Errorf("draw seed: %w", err)
		}
		seed = s
	}

	g := &Game{
		mode:    cfg.Mode,
		seed:    seed,
		players: players,
		sink:    cfg.Sink,
	}

	modeRng := rand.New(rand.NewPCG(seed, seed^0xdeadbeefcafe1234))
	rouletteRng := rand.New(rand.NewPCG(seed, seed^0xfeedfacecafef00d))

	switch cfg.Mode {
	case ModeDeck:
		g.deck = NewDeckRules(modeRng)
	case ModeDice:
		g.dice = NewDiceRules(modeRng)
	}
	g.roulette = NewRoulette(rouletteRng)

	return g, nil
}

// randomSeed draws a non-zero seed from the OS entropy source.
func randomSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	seed := binary.LittleEndian.Uint64(b[:])
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// ---------------------------------------------------------------------------
// Round lifecycle
// ---------------------------------------------------------------------------

// SetupRound starts the next round: deck mode rebuilds and shuffles the
// deck, deals every live player a fresh hand, and draws a new round target;
// dice mode re-rolls every live player's dice and clears the standing bid.
// The round's action history and turn counter reset; the current-player
// index is left alone. Safe to call between rounds or after a challenge.
func (g *Game) SetupRound() {
	g.round++
	g.turn = 0

	payload := map[string]interface{}{"round": g.round}

	switch g.mode {
	case ModeDeck:
		g.deck.CreateDeck()
		g.deck.Deal(g.players)
		target := g.deck.StartRound()
		g.plays = g.plays[:0]
		payload["target"] = target.String()
	case ModeDice:
		g.dice.Roll(g.players)
		g.dice.StartRound()
		g.bids = g.bids[:0]
	}

	g.emit(EventRoundStart, "", payload)
}

// AdvanceTurn moves to the next live player in roster order, wrapping, and
// returns that player's id. With one or zero live players it is a no-op
// returning the sole survivor (or the first roster entry). When the current
// player was just eliminated the advance proceeds from the head of the live
// subsequence. The turn counter increments only on a genuine advance.
func (g *Game) AdvanceTurn() string {
	live := g.livePlayers()
	if len(live) <= 1 {
		if len(live) == 1 {
			return live[0].ID
		}
		return g.players[0].ID
	}

	cur := g.players[g.current]
	idx := 0
	for i, p := range live {
		if p.ID == cur.ID {
			idx = i
			break
		}
	}

	next := live[(idx+1)%len(live)]
	for i, p := range g.players {
		if p.ID == next.ID {
			g.current = i
			break
		}
	}

	g.turn++
	return next.ID
}

// ProcessAction validates and applies one action for the active mode.
// Validation failures reject the action with a typed error and no state
// change; the caller owns any retry or fallback policy, the engine never
// retries. A successful action lands in the round history and is emitted.
func (g *Game) ProcessAction(act Action) error {
	if g.over {
		return fmt.Errorf("game is over")
	}
	if act.Mode() != g.mode {
		return fmt.Errorf("%s action does not fit a %s game", act.Mode(), g.mode)
	}

	p := g.playerByID(act.Actor())
	if p == nil {
		return fmt.Errorf("unknown player %q", act.Actor())
	}
	if !p.Alive() {
		return fmt.Errorf("player %q is eliminated", p.ID)
	}

	switch a := act.(type) {
	case PlayAction:
		if err := g.deck.ValidatePlay(p, a.Cards); err != nil {
			return err
		}
		g.deck.ApplyPlay(p, a)
		g.plays = append(g.plays, a)
		g.emit(EventPlay, a.PlayerID, map[string]interface{}{
			"count": len(a.Cards),
			"claim": a.Claim.String(),
		})
	case BidAction:
		if err := g.dice.ValidateBid(a); err != nil {
			return err
		}
		g.dice.ApplyBid(a)
		g.bids = append(g.bids, a)
		g.emit(EventBid, a.PlayerID, map[string]interface{}{
			"count": a.Count,
			"face":  a.Face,
		})
	}

	return nil
}

// CheckRoundOver reports whether the round exhausted itself: deck mode when
// no live player holds cards, dice mode never (a dice round ends only via
// challenge).
func (g *Game) CheckRoundOver() bool {
	if g.mode == ModeDeck {
		return g.deck.RoundOver(g.players)
	}
	return false
}

// CheckGameOver reports whether at most one live player remains. On the
// transition it sets the game-over flag and the winner (the sole survivor,
// or nobody) and emits the game_over event. Further calls stay true without
// re-emitting.
func (g *Game) CheckGameOver() bool {
	live := g.livePlayers()
	if len(live) > 1 {
		return false
	}

	if !g.over {
		g.over = true
		if len(live) == 1 {
			g.winner = live[0].ID
		}

		g.emit(EventGameOver, g.winner, map[string]interface{}{
			"winner":    g.winner,
			"rounds":    g.round,
			"standings": g.Standings(),
		})
	}

	return true
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Mode returns the game's rule-set tag.
func (g *Game) Mode() Mode { return g.mode }

// Seed returns the seed actually in use, for logging and replay.
func (g *Game) Seed() uint64 { return g.seed }

// Round returns the 1-based round number, 0 before the first SetupRound.
func (g *Game) Round() int { return g.round }

// Turn returns the number of genuine turn advances this round.
func (g *Game) Turn() int { return g.turn }

// CurrentPlayerID returns the id of the player holding the turn. The holder
// may be eliminated immediately after losing a challenge; callers advance
// off it before asking for another decision.
func (g *Game) CurrentPlayerID() string { return g.players[g.current].ID }

// PlayerName resolves a player id to its display name, or "" if unknown.
func (g *Game) PlayerName(id string) string {
	if p := g.playerByID(id); p != nil {
		return p.Name
	}
	return ""
}

// LastAction returns the most recent action of the current round, or nil.
func (g *Game) LastAction() Action {
	switch g.mode {
	case ModeDeck:
		if n := len(g.plays); n > 0 {
			return g.plays[n-1]
		}
	case ModeDice:
		if n := len(g.bids); n > 0 {
			return g.bids[n-1]
		}
	}
	return nil
}

// PreviousActorID returns the actor of the last action, or "".
func (g *Game) PreviousActorID() string {
	if last := g.LastAction(); last != nil {
		return last.Actor()
	}
	return ""
}

// CanChallenge reports whether the player holding the turn may challenge:
// a prior action exists this round and someone else made it.
func (g *Game) CanChallenge() bool {
	last := g.LastAction()
	return last != nil && last.Actor() != g.CurrentPlayerID()
}

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// WinnerID returns the winner's id once the game is over, or "".
func (g *Game) WinnerID() string { return g.winner }

// DeathProbability returns the loser's elimination odds for the next trial.
func (g *Game) DeathProbability() float64 { return g.roulette.DeathProbability() }

// ShotsFired returns the roulette trial count since the last reset.
func (g *Game) ShotsFired() int { return g.roulette.ShotsFired() }

// livePlayers returns the live subsequence of the roster, in roster order.
func (g *Game) livePlayers() []*Player {
	live := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.Alive() {
			live = append(live, p)
		}
	}
	return live
}

// playerByID finds a roster entry, or nil.
func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
