package engine

import (
	"fmt"
	"math/rand/v2"
)

// DeckRules is the deck-mode rule-set: a shuffled 20-card deck (six each of
// Queen, King, Ace plus two Jokers), a per-round target claim, and the tally
// of card groups played onto the table this round.
type DeckRules struct {
	rng    *rand.Rand
	deck   []Card
	target Card
	table  [][]Card // card groups played this round, in play order
}

// NewDeckRules returns a deck rule-set drawing shuffles and round targets
// from rng.
func NewDeckRules(rng *rand.Rand) *DeckRules {
	return &DeckRules{rng: rng, target: CardNone}
}

// CreateDeck rebuilds the full card multiset and shuffles it.
func (d *DeckRules) CreateDeck() {
	deck := make([]Card, 0, DeckSize)
	for _, c := range []Card{CardQueen, CardKing, CardAce, CardJoker} {
		for i := 0; i < copiesOf(c); i++ {
			deck = append(deck, c)
		}
	}

	// Fisher-Yates shuffle.
	for i := len(deck) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	d.deck = deck
}

// Deal clears every live player's hand and draws it back up to HandSize from
// the deck tail. A short deck yields short hands, never an error; with the
// fixed distribution and at most four players it cannot run short.
func (d *DeckRules) Deal(players []*Player) {
	if len(d.deck) == 0 {
		d.CreateDeck()
	}

	for _, p := range players {
		if !p.Alive() {
			continue
		}
		p.Hand = p.Hand[:0]
		for i := 0; i < HandSize && len(d.deck) > 0; i++ {
			last := len(d.deck) - 1
			p.Hand = append(p.Hand, d.deck[last])
			d.deck = d.deck[:last]
		}
	}
}

// StartRound draws a uniformly random round target from the claimable types
// and clears the table tally.
func (d *DeckRules) StartRound() Card {
	claimable := ClaimableCards()
	d.target = claimable[d.rng.IntN(len(claimable))]
	d.table = d.table[:0]
	return d.target
}

// Target returns the current round's target claim, or CardNone before the
// first round.
func (d *DeckRules) Target() Card { return d.target }

// CardsOnTable returns the total number of cards played this round.
func (d *DeckRules) CardsOnTable() int {
	n := 0
	for _, group := range d.table {
		n += len(group)
	}
	return n
}

// ValidatePlay rejects plays of fewer than MinCardsPerPlay or more than
// MaxCardsPerPlay cards, and plays of cards the player does not hold.
// Ownership is checked against a working copy of the hand so duplicates
// must each be backed by a separate copy.
func (d *DeckRules) ValidatePlay(p *Player, cards []Card) error {
	if len(cards) < MinCardsPerPlay {
		return ErrTooFewCards
	}
	if len(cards) > MaxCardsPerPlay {
		return ErrTooManyCards
	}

	hand := append([]Card(nil), p.Hand...)
	for _, c := range cards {
		found := false
		for i, h := range hand {
			if h == c {
				hand[i] = hand[len(hand)-1]
				hand = hand[:len(hand)-1]
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
		}
	}
	return nil
}

// ApplyPlay removes the played cards from the hand and appends the group to
// the table tally. The play must already be validated.
func (d *DeckRules) ApplyPlay(p *Player, act PlayAction) {
	for _, c := range act.Cards {
		for i, h := range p.Hand {
			if h == c {
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				break
			}
		}
	}
	d.table = append(d.table, act.Cards)
}

// RoundOver reports whether no live player holds any cards.
func (d *DeckRules) RoundOver(players []*Player) bool {
	for _, p := range players {
		if p.Alive() && len(p.Hand) > 0 {
			return false
		}
	}
	return true
}
