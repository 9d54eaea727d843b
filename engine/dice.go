package engine

import (
	"fmt"
	"math/rand/v2"
)

// DiceRules is the dice-mode rule-set. Each live player hides five dice;
// the round escalates a single standing bid until someone challenges, so
// the only rule-set state is that bid.
type DiceRules struct {
	rng *rand.Rand
	bid *BidAction
}

// NewDiceRules returns a dice rule-set drawing rolls from rng.
func NewDiceRules(rng *rand.Rand) *DiceRules {
	return &DiceRules{rng: rng}
}

// Roll gives every live player a fresh set of hidden dice.
func (d *DiceRules) Roll(players []*Player) {
	for _, p := range players {
		if !p.Alive() {
			continue
		}
		p.Dice = p.Dice[:0]
		for i := 0; i < DicePerPlayer; i++ {
			p.Dice = append(p.Dice, MinFace+d.rng.IntN(MaxFace-MinFace+1))
		}
	}
}

// StartRound clears the standing bid.
func (d *DiceRules) StartRound() { d.bid = nil }

// CurrentBid returns the standing bid, or nil when the round has none yet.
func (d *DiceRules) CurrentBid() *BidAction { return d.bid }

// ValidateBid rejects out-of-range faces, non-positive counts, and bids
// that do not strictly outrank the standing bid.
func (d *DiceRules) ValidateBid(b BidAction) error {
	if b.Face < MinFace || b.Face > MaxFace {
		return fmt.Errorf("%w: got %d", ErrFaceOutOfRange, b.Face)
	}
	if b.Count < 1 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveCount, b.Count)
	}
	if d.bid != nil && !b.HigherThan(d.bid) {
		return fmt.Errorf("%w (current %dx %d)", ErrBidTooLow, d.bid.Count, d.bid.Face)
	}
	return nil
}

// ApplyBid replaces the standing bid. The bid must already be validated.
func (d *DiceRules) ApplyBid(b BidAction) { d.bid = &b }

// CountFace counts dice showing face across all live players.
func (d *DiceRules) CountFace(players []*Player, face int) int {
	total := 0
	for _, p := range players {
		if !p.Alive() {
			continue
		}
		for _, die := range p.Dice {
			if die == face {
				total++
			}
		}
	}
	return total
}

// ResolveChallenge reveals the pooled dice against the standing bid. The
// bidder was lying iff fewer dice show the claimed face than the bid
// promised. Returns ErrNoBidToChallenge when no bid stands; the control
// loop must not offer a challenge before the first bid.
func (d *DiceRules) ResolveChallenge(players []*Player) (lying bool, actual, claimed int, err error) {
	if d.bid == nil {
		return false, 0, 0, ErrNoBidToChallenge
	}
	actual = d.CountFace(players, d.bid.Face)
	claimed = d.bid.Count
	return actual < claimed, actual, claimed, nil
}
