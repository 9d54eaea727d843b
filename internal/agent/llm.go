package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/raucvr/liarsbar/engine"
	"github.com/raucvr/liarsbar/internal/memory"
)

const (
	actionTemperature    = 0.7
	challengeTemperature = 0.5
)

// LLMAgent plays a seat through an OpenRouter model, with the
// personality's random policy as fallback whenever the model is
// unreachable or answers nonsense. It also implements engine.Sink to
// track challenges and eliminations for cross-game memory.
type LLMAgent struct {
	id       string
	p        Personality
	client   *Client
	fallback *RandomAgent
	store    memory.Store
	journal  *memory.Journal
	log      *logrus.Entry

	// Accumulated over one game; flushed by Finalize.
	events []memory.Event
	round  int
}

// NewLLMAgent seats a model-backed player. Store and journal may be
// nil, which disables recall and journaling respectively.
func NewLLMAgent(id string, p Personality, client *Client, fallback *RandomAgent, store memory.Store, journal *memory.Journal) *LLMAgent {
	return &LLMAgent{
		id:       id,
		p:        p,
		client:   client,
		fallback: fallback,
		store:    store,
		journal:  journal,
		log:      logrus.WithField("agent", id),
	}
}

func (a *LLMAgent) PlayerID() string { return a.id }

// Name returns the personality's display name.
func (a *LLMAgent) Name() string { return a.p.Name }

// Personality exposes the character configuration for this seat.
func (a *LLMAgent) Personality() Personality { return a.p }

// ---------------------------------------------------------------------------
// Decisions
// ---------------------------------------------------------------------------

// DecideAction asks the model for a play or bid, falling back to the
// personality policy when the response is unusable.
func (a *LLMAgent) DecideAction(ctx context.Context, view engine.View) (engine.Action, error) {
	var (
		act engine.Action
		err error
	)
	switch view.Mode {
	case engine.ModeDeck:
		act, err = a.decideDeck(ctx, view)
	case engine.ModeDice:
		act, err = a.decideDice(ctx, view)
	default:
		return nil, fmt.Errorf("no policy for mode %s", view.Mode)
	}
	if err != nil {
		return nil, err
	}
	if play, ok := act.(engine.PlayAction); ok {
		a.recordBluff(play)
	}
	return act, nil
}

func (a *LLMAgent) decideDeck(ctx context.Context, view engine.View) (engine.Action, error) {
	self := view.Self(a.id)
	if self == nil || len(self.Hand) == 0 {
		return a.fallback.DecideAction(ctx, view)
	}

	memories := a.memories(ctx, "deck bluffing strategy card game")
	if resp, ok := a.complete(ctx, a.deckPrompt(view, self, memories), actionTemperature); ok {
		var parsed llmPlay
		if extractJSON(resp, &parsed) && parsed.Action == "play" && len(parsed.Cards) > 0 {
			if act, ok := a.playFromResponse(parsed, view, self); ok {
				return act, nil
			}
		}
		a.log.Debug("unusable model response, using fallback policy")
	}
	return a.fallback.DecideAction(ctx, view)
}

func (a *LLMAgent) decideDice(ctx context.Context, view engine.View) (engine.Action, error) {
	self := view.Self(a.id)
	if self == nil {
		return a.fallback.DecideAction(ctx, view)
	}

	memories := a.memories(ctx, "dice bidding bluffing strategy")
	if resp, ok := a.complete(ctx, a.dicePrompt(view, self, memories), actionTemperature); ok {
		var parsed llmBid
		if extractJSON(resp, &parsed) && parsed.Action == "bid" {
			if act, ok := a.bidFromResponse(parsed, view); ok {
				return act, nil
			}
		}
		a.log.Debug("unusable model response, using fallback policy")
	}
	return a.fallback.DecideAction(ctx, view)
}

// DecideChallenge asks the model whether to call the last action a lie.
func (a *LLMAgent) DecideChallenge(ctx context.Context, view engine.View, last engine.Action) (bool, error) {
	if last == nil {
		return false, nil
	}

	memories := a.memories(ctx, "challenge bluff detection "+last.Actor())
	if resp, ok := a.complete(ctx, a.challengePrompt(view, last, memories), challengeTemperature); ok {
		var parsed llmChallenge
		if extractJSON(resp, &parsed) && parsed.Challenge != nil {
			return *parsed.Challenge, nil
		}
		a.log.Debug("unusable model response, using fallback policy")
	}
	return a.fallback.DecideChallenge(ctx, view, last)
}

func (a *LLMAgent) complete(ctx context.Context, user string, temperature float64) (string, bool) {
	if a.client == nil || a.p.ModelID == "" {
		return "", false
	}
	resp, err := a.client.Complete(ctx, a.p.ModelID, a.p.SystemPrompt(), user, temperature)
	if err != nil {
		a.log.WithError(err).Warn("model query failed, using fallback policy")
		return "", false
	}
	return resp, true
}

// ---------------------------------------------------------------------------
// Response parsing
// ---------------------------------------------------------------------------

type llmPlay struct {
	Action string   `json:"action"`
	Cards  []string `json:"cards"`
	Claim  string   `json:"claim"`
}

type llmBid struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
	Face   int    `json:"face"`
}

type llmChallenge struct {
	Challenge *bool `json:"challenge"`
}

var jsonObjectRe = regexp.MustCompile(`\{[^{}]*\}`)

// extractJSON pulls the first JSON object out of a reply that may wrap
// it in prose. Falls back to decoding the whole reply.
func extractJSON(resp string, target interface{}) bool {
	if m := jsonObjectRe.FindString(resp); m != "" {
		if json.Unmarshal([]byte(m), target) == nil {
			return true
		}
	}
	return json.Unmarshal([]byte(resp), target) == nil
}

// playFromResponse validates the model's card choices against the hand.
// Unknown card names are skipped and claims outside Q/K/A collapse to
// the round target. Returns false when nothing playable remains.
func (a *LLMAgent) playFromResponse(parsed llmPlay, view engine.View, self *engine.PlayerView) (engine.Action, bool) {
	target := view.Target
	if target == engine.CardNone {
		return nil, false
	}

	limit := len(parsed.Cards)
	if limit > engine.MaxCardsPerPlay {
		limit = engine.MaxCardsPerPlay
	}
	var cards []engine.Card
	for _, s := range parsed.Cards[:limit] {
		c, err := engine.ParseCard(s)
		if err != nil {
			continue
		}
		cards = append(cards, c)
	}

	// Keep only copies actually held.
	held := append([]engine.Card(nil), self.Hand...)
	var valid []engine.Card
	for _, c := range cards {
		for i, h := range held {
			if h == c {
				valid = append(valid, c)
				held = append(held[:i], held[i+1:]...)
				break
			}
		}
	}
	if len(valid) == 0 {
		return nil, false
	}

	claim, err := engine.ParseCard(parsed.Claim)
	if err != nil || !claim.Claimable() {
		claim = target
	}
	return engine.NewPlayAction(a.id, valid, claim), true
}

// bidFromResponse validates the model's bid against the standing one.
func (a *LLMAgent) bidFromResponse(parsed llmBid, view engine.View) (engine.Action, bool) {
	if parsed.Face < engine.MinFace || parsed.Face > engine.MaxFace || parsed.Count < 1 {
		return nil, false
	}
	bid := engine.NewBidAction(a.id, parsed.Count, parsed.Face)

	var prev *engine.BidAction
	if cb := view.CurrentBid; cb != nil {
		p := engine.NewBidAction(cb.PlayerID, cb.Count, cb.Face)
		prev = &p
	}
	if !bid.HigherThan(prev) {
		return nil, false
	}
	return bid, true
}

// ---------------------------------------------------------------------------
// Prompts
// ---------------------------------------------------------------------------

type promptPlayer struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsAlive         bool   `json:"is_alive"`
	BulletsSurvived int    `json:"bullets_survived"`
	CardsInHand     *int   `json:"cards_in_hand"`
	IsCurrent       bool   `json:"is_current"`
}

type promptPlay struct {
	PlayerID    string `json:"player_id"`
	CardsCount  int    `json:"cards_count"`
	ClaimedType string `json:"claimed_type"`
}

type promptBid struct {
	PlayerID string `json:"player_id"`
	BidCount int    `json:"bid_count"`
	BidFace  int    `json:"bid_face"`
}

func promptPlayers(view engine.View) []promptPlayer {
	out := make([]promptPlayer, 0, len(view.Players))
	for _, pv := range view.Players {
		p := promptPlayer{
			ID:              pv.ID,
			Name:            pv.Name,
			IsAlive:         pv.Alive,
			BulletsSurvived: pv.Survived,
			IsCurrent:       pv.ID == view.Current,
		}
		if view.Mode == engine.ModeDeck {
			n := pv.HandSize
			p.CardsInHand = &n
		}
		out = append(out, p)
	}
	return out
}

func recentPlays(view engine.View) []promptPlay {
	plays := view.Plays
	if len(plays) > 5 {
		plays = plays[len(plays)-5:]
	}
	out := make([]promptPlay, 0, len(plays))
	for _, p := range plays {
		out = append(out, promptPlay{PlayerID: p.PlayerID, CardsCount: p.Count, ClaimedType: p.Claim.String()})
	}
	return out
}

func recentBids(view engine.View) []promptBid {
	bids := view.Bids
	if len(bids) > 5 {
		bids = bids[len(bids)-5:]
	}
	out := make([]promptBid, 0, len(bids))
	for _, b := range bids {
		out = append(out, promptBid{PlayerID: b.PlayerID, BidCount: b.Count, BidFace: b.Face})
	}
	return out
}

func cardNames(cards []engine.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

func (a *LLMAgent) deckPrompt(view engine.View, self *engine.PlayerView, memories string) string {
	hand, _ := json.Marshal(cardNames(self.Hand))
	players, _ := json.MarshalIndent(promptPlayers(view), "", "  ")
	recent, _ := json.MarshalIndent(recentPlays(view), "", "  ")

	return fmt.Sprintf(`Current game state:
- Round: %d
- Target card for this round: %s
- Your hand: %s
- Cards on table: %d
- Roulette shots fired: %d

Players:
%s

Recent actions this round:
%s

%s

What cards do you play and what do you claim? You must play 1-3 cards.
Respond with JSON: {"action": "play", "cards": ["Q", "K"], "claim": "K"}`,
		view.Round, view.Target, hand, view.CardsOnTable, view.ShotsFired, players, recent, memories)
}

func (a *LLMAgent) dicePrompt(view engine.View, self *engine.PlayerView, memories string) string {
	dice, _ := json.Marshal(self.Dice)
	players, _ := json.MarshalIndent(promptPlayers(view), "", "  ")
	recent, _ := json.MarshalIndent(recentBids(view), "", "  ")

	currentBid := "No current bid - you start"
	if cb := view.CurrentBid; cb != nil {
		currentBid = fmt.Sprintf("%dx %d's by %s", cb.Count, cb.Face, cb.PlayerID)
	}

	return fmt.Sprintf(`Current game state:
- Round: %d
- Your dice: %s
- Current bid: %s
- Active players: %d
- Roulette shots fired: %d

Players:
%s

Recent bids:
%s

%s

Make your bid. It must be higher than the current bid.
Respond with JSON: {"action": "bid", "count": 3, "face": 5}`,
		view.Round, dice, currentBid, len(view.LivePlayers()), view.ShotsFired, players, recent, memories)
}

func (a *LLMAgent) challengePrompt(view engine.View, last engine.Action, memories string) string {
	var actionDesc string
	switch act := last.(type) {
	case engine.PlayAction:
		actionDesc = fmt.Sprintf("played %d card(s) claiming %s", len(act.Cards), act.Claim)
	case engine.BidAction:
		actionDesc = fmt.Sprintf("bid %dx %d's", act.Count, act.Face)
	}

	holding := "(unknown)"
	if self := view.Self(a.id); self != nil {
		if view.Mode == engine.ModeDeck {
			data, _ := json.Marshal(cardNames(self.Hand))
			holding = string(data)
		} else {
			data, _ := json.Marshal(self.Dice)
			holding = string(data)
		}
	}

	danger := float64(view.ShotsFired+1) / float64(engine.Chambers) * 100

	return fmt.Sprintf(`Previous player %s %s.

Your situation:
- Your hand/dice: %s
- Roulette shots fired: %d (higher = more dangerous)
- Death probability if you lose: %.0f%%

%s

Should you challenge and call "LIAR!"?
- If correct: they play roulette
- If wrong: YOU play roulette

Respond with JSON: {"challenge": true} or {"challenge": false}`,
		last.Actor(), actionDesc, holding, view.ShotsFired, danger, memories)
}

func (a *LLMAgent) memories(ctx context.Context, query string) string {
	if a.store == nil {
		return "No previous game memories."
	}
	entries, err := a.store.Retrieve(ctx, a.id, query, 5)
	if err != nil {
		a.log.WithError(err).Debug("memory retrieval failed")
		return "No previous game memories."
	}
	if len(entries) == 0 {
		return "No previous game memories."
	}

	var b strings.Builder
	b.WriteString("Relevant memories from past games:")
	for _, e := range entries {
		b.WriteString("\n- ")
		b.WriteString(e)
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Memory tracking
// ---------------------------------------------------------------------------

func (a *LLMAgent) recordBluff(play engine.PlayAction) {
	ev := memory.NewBluffEvent(
		a.id,
		!play.Truthful,
		strings.Join(cardNames(play.Cards), ", "),
		play.Claim.String(),
		nil,
		a.round,
	)
	a.events = append(a.events, ev)
	memory.RememberAsync(a.store, a.id, []memory.Event{ev}, a.log)
}

// Emit tracks the public game stream. Challenges and eliminations are
// pushed to recall as they happen; everything lands in the journal.
func (a *LLMAgent) Emit(ev engine.Event) {
	switch ev.Type {
	case engine.EventRoundStart:
		if r, ok := ev.Payload["round"].(int); ok {
			a.round = r
		}
	case engine.EventChallenge:
		challenged, _ := ev.Payload["challenged"].(string)
		wasBluff, _ := ev.Payload["was_bluff"].(bool)
		loser, _ := ev.Payload["loser"].(string)
		survived, _ := ev.Payload["survived"].(bool)
		mev := memory.NewChallengeEvent(ev.PlayerID, challenged, wasBluff, loser, survived, a.round)
		a.events = append(a.events, mev)
		memory.RememberAsync(a.store, a.id, []memory.Event{mev}, a.log)
	case engine.EventElimination:
		eliminated, _ := ev.Payload["eliminated"].(string)
		by, _ := ev.Payload["by"].(string)
		mev := memory.NewEliminationEvent(eliminated, by, a.round)
		a.events = append(a.events, mev)
		memory.RememberAsync(a.store, a.id, []memory.Event{mev}, a.log)
	}
}

// Finalize records the result, writes the journal file, and pushes the
// summary to recall. Call once when the game ends.
func (a *LLMAgent) Finalize(ctx context.Context, winnerID string, totalRounds int, playerStats map[string]interface{}) error {
	final := memory.NewGameOverEvent(winnerID, totalRounds, playerStats)
	a.events = append(a.events, final)
	events := a.events
	a.events = nil

	var firstErr error
	if a.journal != nil {
		if _, err := a.journal.Dump(a.id, events); err != nil {
			firstErr = err
			a.log.WithError(err).Warn("failed to write memory journal")
		}
	}
	if a.store != nil {
		if err := a.store.Remember(ctx, a.id, []memory.Event{final}); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			a.log.WithError(err).Warn("failed to store final game memory")
		}
	}
	return firstErr
}
