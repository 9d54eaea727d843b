package agent

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/raucvr/liarsbar/engine"
)

// RandomAgent plays a seat on personality tendencies alone. It backs
// every LLM persona as the fallback when the model call fails, and runs
// seats with no model at all.
type RandomAgent struct {
	id  string
	p   Personality
	rng *rand.Rand
}

// NewRandomAgent seats a policy-only player. Seed fixes the policy's
// randomness for reproducible games.
func NewRandomAgent(id string, p Personality, seed uint64) *RandomAgent {
	return &RandomAgent{
		id:  id,
		p:   p,
		rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeefcafe1234)),
	}
}

func (a *RandomAgent) PlayerID() string { return a.id }

// Name returns the personality's display name.
func (a *RandomAgent) Name() string { return a.p.Name }

// Personality exposes the tendencies backing this policy.
func (a *RandomAgent) Personality() Personality { return a.p }

// DecideAction picks a play or bid from the personality tendencies.
func (a *RandomAgent) DecideAction(_ context.Context, view engine.View) (engine.Action, error) {
	switch view.Mode {
	case engine.ModeDeck:
		return a.deckAction(view)
	case engine.ModeDice:
		return a.diceAction(view)
	}
	return nil, fmt.Errorf("no policy for mode %s", view.Mode)
}

func (a *RandomAgent) deckAction(view engine.View) (engine.Action, error) {
	self := view.Self(a.id)
	if self == nil {
		return nil, fmt.Errorf("player %s not in view", a.id)
	}
	hand := self.Hand
	if len(hand) == 0 {
		return nil, fmt.Errorf("player %s has no cards to play", a.id)
	}

	target := view.Target
	if target == engine.CardNone {
		cs := engine.ClaimableCards()
		target = cs[a.rng.IntN(len(cs))]
	}

	n := 1 + a.rng.IntN(min(engine.MaxCardsPerPlay, len(hand)))

	var matching []engine.Card
	for _, c := range hand {
		if c == target || c == engine.CardJoker {
			matching = append(matching, c)
		}
	}

	var cards []engine.Card
	if a.rng.Float64() < a.p.BluffTendency || len(matching) == 0 {
		for _, i := range a.rng.Perm(len(hand))[:n] {
			cards = append(cards, hand[i])
		}
	} else {
		if n > len(matching) {
			n = len(matching)
		}
		cards = matching[:n]
	}
	return engine.NewPlayAction(a.id, cards, target), nil
}

func (a *RandomAgent) diceAction(view engine.View) (engine.Action, error) {
	self := view.Self(a.id)
	if self == nil {
		return nil, fmt.Errorf("player %s not in view", a.id)
	}

	cur := view.CurrentBid
	if cur == nil {
		// Open on our most common face, lowest face winning ties.
		counts := make(map[int]int)
		for _, d := range self.Dice {
			counts[d]++
		}
		face, best := engine.MinFace, 0
		for f := engine.MinFace; f <= engine.MaxFace; f++ {
			if counts[f] > best {
				face, best = f, counts[f]
			}
		}
		return engine.NewBidAction(a.id, max(1, best), face), nil
	}

	if a.rng.Float64() < a.p.BluffTendency {
		count := cur.Count + 1 + a.rng.IntN(2)
		face := cur.Face + a.rng.IntN(engine.MaxFace-cur.Face+1)
		return engine.NewBidAction(a.id, count, face), nil
	}
	// Smallest legal raise.
	if cur.Face < engine.MaxFace {
		return engine.NewBidAction(a.id, cur.Count, cur.Face+1), nil
	}
	return engine.NewBidAction(a.id, cur.Count+1, engine.MinFace+a.rng.IntN(engine.MaxFace)), nil
}

// DecideChallenge rolls against the challenge tendency, discounted by
// how loaded the challenger's next pull would be.
func (a *RandomAgent) DecideChallenge(_ context.Context, view engine.View, _ engine.Action) (bool, error) {
	p := a.p.ChallengeTendency - 0.1*float64(view.ShotsFired)
	return a.rng.Float64() < p, nil
}
