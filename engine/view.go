package engine

// View is a value snapshot of game state for one observer. Other players'
// holdings appear only as counts, and recorded plays carry the claim and
// card count but never the cards themselves or their truthfulness. Mutating
// a View never touches the live game.
type View struct {
	Mode    Mode
	Round   int
	Turn    int
	Current string

	Players []PlayerView

	// Deck mode.
	Target       Card
	CardsOnTable int
	Plays        []PlayRecord

	// Dice mode.
	CurrentBid *BidRecord
	Bids       []BidRecord

	Challenges []ChallengeResult

	ShotsFired       int
	DeathProbability float64

	Over   bool
	Winner string
}

// PlayerView is one roster entry as seen by the observer. Hand and Dice are
// populated only for the observer's own entry, or for everyone in an
// unrestricted view.
type PlayerView struct {
	ID        string
	Name      string
	Alive     bool
	Survived  int
	HandSize  int
	DiceCount int
	Hand      []Card
	Dice      []int
}

// PlayRecord is the public shape of a played group: who, how many, claimed
// as what.
type PlayRecord struct {
	PlayerID string
	Count    int
	Claim    Card
}

// BidRecord is the public shape of a standing bid.
type BidRecord struct {
	PlayerID string
	Count    int
	Face     int
}

// ViewFor builds a snapshot restricted to the given observer. An empty
// observer id yields an unrestricted view with every holding revealed,
// meant for rendering and post-game inspection rather than for players.
func (g *Game) ViewFor(observerID string) View {
	v := View{
		Mode:             g.mode,
		Round:            g.round,
		Turn:             g.turn,
		Current:          g.players[g.current].ID,
		Challenges:       g.Challenges(),
		ShotsFired:       g.roulette.ShotsFired(),
		DeathProbability: g.roulette.DeathProbability(),
		Over:             g.over,
		Winner:           g.winner,
	}

	v.Players = make([]PlayerView, 0, len(g.players))
	for _, p := range g.players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Alive:     p.Alive(),
			Survived:  p.Survived,
			HandSize:  len(p.Hand),
			DiceCount: len(p.Dice),
		}
		if observerID == "" || observerID == p.ID {
			pv.Hand = append([]Card(nil), p.Hand...)
			pv.Dice = append([]int(nil), p.Dice...)
		}
		v.Players = append(v.Players, pv)
	}

	switch g.mode {
	case ModeDeck:
		v.Target = g.deck.Target()
		v.CardsOnTable = g.deck.CardsOnTable()
		v.Plays = make([]PlayRecord, 0, len(g.plays))
		for _, a := range g.plays {
			v.Plays = append(v.Plays, PlayRecord{
				PlayerID: a.PlayerID,
				Count:    len(a.Cards),
				Claim:    a.Claim,
			})
		}
	case ModeDice:
		v.Bids = make([]BidRecord, 0, len(g.bids))
		for _, a := range g.bids {
			v.Bids = append(v.Bids, BidRecord{
				PlayerID: a.PlayerID,
				Count:    a.Count,
				Face:     a.Face,
			})
		}
		if bid := g.dice.CurrentBid(); bid != nil {
			v.CurrentBid = &BidRecord{
				PlayerID: bid.PlayerID,
				Count:    bid.Count,
				Face:     bid.Face,
			}
		}
	}

	return v
}

// Self returns the observer's own entry, or nil when the id is unknown.
func (v *View) Self(id string) *PlayerView {
	for i := range v.Players {
		if v.Players[i].ID == id {
			return &v.Players[i]
		}
	}
	return nil
}

// LivePlayers returns the ids of players still in the game, roster order.
func (v *View) LivePlayers() []string {
	ids := make([]string, 0, len(v.Players))
	for _, p := range v.Players {
		if p.Alive {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
