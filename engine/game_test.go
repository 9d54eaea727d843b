package engine

import (
	"errors"
	"testing"
)

type recordSink struct {
	events []Event
}

func (s *recordSink) Emit(e Event) { s.events = append(s.events, e) }

func (s *recordSink) ofType(typ EventType) []Event {
	var out []Event
	for _, e := range s.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func testConfig(mode Mode, n int, seed uint64) Config {
	names := []string{"Alice", "Bob", "Carol", "Dave"}
	players := make([]Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, Player{ID: names[i][:1], Name: names[i]})
	}
	return Config{Mode: mode, Players: players, Seed: seed}
}

func newTestGame(t *testing.T, mode Mode, n int, seed uint64) (*Game, *recordSink) {
	t.Helper()
	sink := &recordSink{}
	cfg := testConfig(mode, n, seed)
	cfg.Sink = sink
	g, err := NewGame(cfg)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, sink
}

// TestNewGameValidation verifies config rejection: bad mode, roster bounds,
// empty and duplicate ids.
func TestNewGameValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown mode", Config{Mode: Mode(9), Players: testConfig(ModeDeck, 2, 1).Players}},
		{"one player", testConfig(ModeDeck, 1, 1)},
		{"five players", Config{Mode: ModeDeck, Players: []Player{
			{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
		}}},
		{"empty id", Config{Mode: ModeDeck, Players: []Player{{ID: "a"}, {ID: ""}}}},
		{"duplicate id", Config{Mode: ModeDeck, Players: []Player{{ID: "a"}, {ID: "a"}}}},
	}
	for _, tt := range tests {
		if _, err := NewGame(tt.cfg); err == nil {
			t.Errorf("%s: NewGame accepted invalid config", tt.name)
		}
	}

	if _, err := NewGame(testConfig(ModeDice, 2, 1)); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

// TestNewGameDrawsSeed verifies a zero seed is replaced with a real one.
func TestNewGameDrawsSeed(t *testing.T) {
	g, err := NewGame(testConfig(ModeDeck, 2, 0))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if g.Seed() == 0 {
		t.Error("Seed() = 0, want a drawn seed")
	}
}

// TestSetupRoundDeck verifies dealing, target, counters, and the
// round_start event.
func TestSetupRoundDeck(t *testing.T) {
	g, sink := newTestGame(t, ModeDeck, 4, 1)

	g.SetupRound()

	if got := g.Round(); got != 1 {
		t.Errorf("Round() = %d, want 1", got)
	}
	if got := g.Turn(); got != 0 {
		t.Errorf("Turn() = %d, want 0", got)
	}
	for _, p := range g.players {
		if got := len(p.Hand); got != HandSize {
			t.Errorf("player %s hand size = %d, want %d", p.ID, got, HandSize)
		}
	}
	if !g.deck.Target().Claimable() {
		t.Errorf("target = %v, want claimable", g.deck.Target())
	}
	if g.LastAction() != nil {
		t.Error("fresh round has a last action")
	}

	starts := sink.ofType(EventRoundStart)
	if len(starts) != 1 {
		t.Fatalf("round_start events = %d, want 1", len(starts))
	}
	if got := starts[0].Payload["round"]; got != 1 {
		t.Errorf("round_start round = %v, want 1", got)
	}
	if _, ok := starts[0].Payload["target"]; !ok {
		t.Error("deck round_start missing target")
	}
}

// TestSetupRoundDice verifies rolling, bid reset, and round numbering over
// consecutive rounds.
func TestSetupRoundDice(t *testing.T) {
	g, sink := newTestGame(t, ModeDice, 3, 2)

	g.SetupRound()
	if err := g.ProcessAction(NewBidAction(g.CurrentPlayerID(), 2, 3)); err != nil {
		t.Fatalf("ProcessAction: %v", err)
	}

	g.SetupRound()

	if got := g.Round(); got != 2 {
		t.Errorf("Round() = %d, want 2", got)
	}
	for _, p := range g.players {
		if got := len(p.Dice); got != DicePerPlayer {
			t.Errorf("player %s dice = %d, want %d", p.ID, got, DicePerPlayer)
		}
	}
	if g.dice.CurrentBid() != nil {
		t.Error("standing bid survived SetupRound")
	}
	if g.LastAction() != nil {
		t.Error("bid history survived SetupRound")
	}

	starts := sink.ofType(EventRoundStart)
	if len(starts) != 2 {
		t.Fatalf("round_start events = %d, want 2", len(starts))
	}
	if _, ok := starts[0].Payload["target"]; ok {
		t.Error("dice round_start carries a target")
	}
}

// TestAdvanceTurnRotation verifies roster-order rotation with wrap and the
// turn counter.
func TestAdvanceTurnRotation(t *testing.T) {
	g, _ := newTestGame(t, ModeDeck, 4, 3)
	g.SetupRound()

	if got := g.CurrentPlayerID(); got != "A" {
		t.Fatalf("initial current = %q, want %q", got, "A")
	}
	want := []string{"B", "C", "D", "A", "B"}
	for i, w := range want {
		if got := g.AdvanceTurn(); got != w {
			t.Errorf("advance %d = %q, want %q", i, got, w)
		}
	}
	if got := g.Turn(); got != len(want) {
		t.Errorf("Turn() = %d, want %d", got, len(want))
	}
}

// TestAdvanceTurnSkipsEliminated verifies eliminated players drop out of
// the rotation.
func TestAdvanceTurnSkipsEliminated(t *testing.T) {
	g, _ := newTestGame(t, ModeDeck, 4, 4)
	g.SetupRound()

	g.players[1].Status = StatusEliminated // B

	want := []string{"C", "D", "A", "C"}
	for i, w := range want {
		if got := g.AdvanceTurn(); got != w {
			t.Errorf("advance %d = %q, want %q", i, got, w)
		}
	}
}

// TestAdvanceTurnFromEliminatedCurrent verifies the advance proceeds from
// the head of the live subsequence when the turn holder was just
// eliminated.
func TestAdvanceTurnFromEliminatedCurrent(t *testing.T) {
	g, _ := newTestGame(t, ModeDeck, 4, 5)
	g.SetupRound()

	g.players[0].Status = StatusEliminated // A holds the turn, now dead

	if got := g.AdvanceTurn(); got != "C" {
		t.Errorf("advance from dead current = %q, want %q", got, "C")
	}
	if got := g.CurrentPlayerID(); got != "C" {
		t.Errorf("current after advance = %q, want %q", got, "C")
	}
}

// TestAdvanceTurnSoleSurvivor verifies the no-op contract with one or zero
// live players.
func TestAdvanceTurnSoleSurvivor(t *testing.T) {
	g, _ := newTestGame(t, ModeDeck, 3, 6)
	g.SetupRound()

	g.players[0].Status = StatusEliminated
	g.players[2].Status = StatusEliminated

	before := g.Turn()
	if got := g.AdvanceTurn(); got != "B" {
		t.Errorf("AdvanceTurn() = %q, want sole survivor %q", got, "B")
	}
	if got := g.Turn(); got != before {
		t.Errorf("Turn() = %d after no-op advance, want %d", got, before)
	}

	g.players[1].Status = StatusEliminated
	if got := g.AdvanceTurn(); got != "A" {
		t.Errorf("AdvanceTurn() with no survivors = %q, want first roster entry %q", got, "A")
	}
}

// TestProcessActionDeck verifies a valid play moves cards and emits, and an
// invalid play changes nothing.
func TestProcessActionDeck(t *testing.T) {
	g, sink := newTestGame(t, ModeDeck, 2, 7)
	g.SetupRound()

	cur := g.playerByID(g.CurrentPlayerID())
	card := cur.Hand[0]

	if err := g.ProcessAction(NewPlayAction(cur.ID, []Card{card}, g.deck.Target())); err != nil {
		t.Fatalf("ProcessAction: %v", err)
	}
	if got := len(cur.Hand); got != HandSize-1 {
		t.Errorf("hand size after play = %d, want %d", got, HandSize-1)
	}
	if g.LastAction() == nil || g.PreviousActorID() != cur.ID {
		t.Errorf("PreviousActorID() = %q, want %q", g.PreviousActorID(), cur.ID)
	}

	plays := sink.ofType(EventPlay)
	if len(plays) != 1 {
		t.Fatalf("play events = %d, want 1", len(plays))
	}
	if got := plays[0].Payload["count"]; got != 1 {
		t.Errorf("play event count = %v, want 1", got)
	}
	if _, ok := plays[0].Payload["cards"]; ok {
		t.Error("play event leaks the actual cards")
	}

	// A play of cards the player does not hold is rejected without side
	// effects.
	missing := CardQueen
	held := countCards(cur.Hand)
	for _, c := range []Card{CardQueen, CardKing, CardAce} {
		if held[c] == 0 {
			missing = c
			break
		}
	}
	bad := make([]Card, held[missing]+1)
	for i := range bad {
		bad[i] = missing
	}
	handBefore := append([]Card(nil), cur.Hand...)
	err := g.ProcessAction(NewPlayAction(cur.ID, bad, g.deck.Target()))
	if !errors.Is(err, ErrCardNotInHand) && !errors.Is(err, ErrTooManyCards) {
		t.Fatalf("invalid play returned %v, want ownership or size error", err)
	}
	if len(cur.Hand) != len(handBefore) {
		t.Error("invalid play mutated the hand")
	}
	if got := len(sink.ofType(EventPlay)); got != 1 {
		t.Errorf("play events after rejection = %d, want 1", got)
	}
}

// TestProcessActionRejections verifies the shared preconditions.
func TestProcessActionRejections(t *testing.T) {
	g, _ := newTestGame(t, ModeDeck, 2, 8)
	g.SetupRound()
	cur := g.playerByID(g.CurrentPlayerID())

	if err := g.ProcessAction(NewBidAction(cur.ID, 2, 3)); err == nil {
		t.Error("dice action accepted by a deck game")
	}
	if err := g.ProcessAction(NewPlayAction("nobody", []Card{CardQueen}, CardQueen)); err == nil {
		t.Error("action accepted from unknown player")
	}

	other := g.players[1]
	other.Status = StatusEliminated
	if err := g.ProcessAction(NewPlayAction(other.ID, []Card{other.Hand[0]}, g.deck.Target())); err == nil {
		t.Error("action accepted from eliminated player")
	}

	g.over = true
	if err := g.ProcessAction(NewPlayAction(cur.ID, []Card{cur.Hand[0]}, g.deck.Target())); err == nil {
		t.Error("action accepted after game over")
	}
}

// TestProcessActionBid verifies bid escalation through the game wrapper.
func TestProcessActionBid(t *testing.T) {
	g, sink := newTestGame(t, ModeDice, 2, 9)
	g.SetupRound()

	a := g.CurrentPlayerID()
	if err := g.ProcessAction(NewBidAction(a, 2, 3)); err != nil {
		t.Fatalf("first bid: %v", err)
	}
	b := g.AdvanceTurn()

	if err := g.ProcessAction(NewBidAction(b, 2, 3)); !errors.Is(err, ErrBidTooLow) {
		t.Errorf("equal bid returned %v, want ErrBidTooLow", err)
	}
	if err := g.ProcessAction(NewBidAction(b, 3, 1)); err != nil {
		t.Fatalf("escalated bid: %v", err)
	}

	if got := len(sink.ofType(EventBid)); got != 2 {
		t.Errorf("bid events = %d, want 2", got)
	}
	last, ok := g.LastAction().(BidAction)
	if !ok || last.PlayerID != b || last.Count != 3 || last.Face != 1 {
		t.Errorf("LastAction() = %+v, want %s's 3x1", g.LastAction(), b)
	}
}

// TestCanChallenge verifies the gate: an action must exist and belong to
// someone other than the turn holder.
func TestCanChallenge(t *testing.T) {
	g, _ := newTestGame(t, ModeDice, 2, 10)
	g.SetupRound()

	if g.CanChallenge() {
		t.Error("CanChallenge() = true on a fresh round")
	}

	cur := g.CurrentPlayerID()
	if err := g.ProcessAction(NewBidAction(cur, 1, 2)); err != nil {
		t.Fatalf("ProcessAction: %v", err)
	}
	if g.CanChallenge() {
		t.Error("CanChallenge() = true while the last actor still holds the turn")
	}

	g.AdvanceTurn()
	if !g.CanChallenge() {
		t.Error("CanChallenge() = false for the next player")
	}
}

// TestCheckGameOver verifies the transition fires once, sets the winner,
// and emits a single game_over event with standings.
func TestCheckGameOver(t *testing.T) {
	g, sink := newTestGame(t, ModeDeck, 3, 11)
	g.SetupRound()

	if g.CheckGameOver() {
		t.Fatal("CheckGameOver() = true with a full roster")
	}

	g.players[0].Status = StatusEliminated
	g.players[2].Status = StatusEliminated

	if !g.CheckGameOver() {
		t.Fatal("CheckGameOver() = false with one survivor")
	}
	if !g.Over() {
		t.Error("Over() = false after the game ended")
	}
	if got := g.WinnerID(); got != "B" {
		t.Errorf("WinnerID() = %q, want %q", got, "B")
	}

	if !g.CheckGameOver() {
		t.Error("CheckGameOver() flipped back to false")
	}
	overs := sink.ofType(EventGameOver)
	if len(overs) != 1 {
		t.Fatalf("game_over events = %d, want 1", len(overs))
	}
	if got := overs[0].Payload["winner"]; got != "B" {
		t.Errorf("game_over winner = %v, want %q", got, "B")
	}
	standings, ok := overs[0].Payload["standings"].([]Standing)
	if !ok || len(standings) != 3 {
		t.Fatalf("game_over standings = %v, want 3 entries", overs[0].Payload["standings"])
	}
	if standings[0].PlayerID != "B" || standings[0].Rank != 1 {
		t.Errorf("standings[0] = %+v, want winner B at rank 1", standings[0])
	}
}

// TestViewForRedaction verifies hidden state stays hidden: other hands show
// as counts, plays show count and claim only.
func TestViewForRedaction(t *testing.T) {
	g, _ := newTestGame(t, ModeDeck, 2, 12)
	g.SetupRound()

	a := g.CurrentPlayerID()
	cards := []Card{g.playerByID(a).Hand[0], g.playerByID(a).Hand[1]}
	if err := g.ProcessAction(NewPlayAction(a, cards, g.deck.Target())); err != nil {
		t.Fatalf("ProcessAction: %v", err)
	}

	v := g.ViewFor(a)
	self := v.Self(a)
	if self == nil || len(self.Hand) != HandSize-2 {
		t.Fatalf("observer's own hand missing from view")
	}
	for _, pv := range v.Players {
		if pv.ID == a {
			continue
		}
		if pv.Hand != nil || pv.Dice != nil {
			t.Errorf("player %s holdings visible to %s", pv.ID, a)
		}
		if pv.HandSize != HandSize {
			t.Errorf("player %s HandSize = %d, want %d", pv.ID, pv.HandSize, HandSize)
		}
	}

	if len(v.Plays) != 1 {
		t.Fatalf("view plays = %d, want 1", len(v.Plays))
	}
	if v.Plays[0].Count != 2 || v.Plays[0].Claim != g.deck.Target() {
		t.Errorf("play record = %+v, want count 2 claim %v", v.Plays[0], g.deck.Target())
	}

	full := g.ViewFor("")
	for _, pv := range full.Players {
		if len(pv.Hand) != pv.HandSize {
			t.Errorf("unrestricted view hides player %s's hand", pv.ID)
		}
	}
}

// TestViewIsACopy verifies mutating a view cannot reach game state.
func TestViewIsACopy(t *testing.T) {
	g, _ := newTestGame(t, ModeDice, 2, 13)
	g.SetupRound()

	a := g.CurrentPlayerID()
	v := g.ViewFor(a)
	self := v.Self(a)
	want := g.playerByID(a).Dice[0]

	self.Dice[0] = 99
	if got := g.playerByID(a).Dice[0]; got != want {
		t.Errorf("view mutation reached game state: die = %d, want %d", got, want)
	}
}
