package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raucvr/liarsbar/engine"
)

// HumanAgent reads decisions from the terminal. Prompts loop until the
// input parses and the player confirms.
type HumanAgent struct {
	id   string
	name string
	in   *bufio.Reader
	out  io.Writer
}

// NewHumanAgent seats a terminal player reading from in.
func NewHumanAgent(id, name string, in io.Reader, out io.Writer) *HumanAgent {
	return &HumanAgent{
		id:   id,
		name: name,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

func (h *HumanAgent) PlayerID() string { return h.id }

// Name returns the name the player chose at startup.
func (h *HumanAgent) Name() string { return h.name }

func (h *HumanAgent) prompt(msg string) (string, error) {
	fmt.Fprint(h.out, msg)
	line, err := h.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// DecideAction prompts for a play or bid depending on the mode.
func (h *HumanAgent) DecideAction(_ context.Context, view engine.View) (engine.Action, error) {
	switch view.Mode {
	case engine.ModeDeck:
		return h.decideDeck(view)
	case engine.ModeDice:
		return h.decideDice(view)
	}
	return nil, fmt.Errorf("no prompts for mode %s", view.Mode)
}

func (h *HumanAgent) decideDeck(view engine.View) (engine.Action, error) {
	self := view.Self(h.id)
	if self == nil {
		return nil, fmt.Errorf("player %s not in view", h.id)
	}
	hand := self.Hand

	fmt.Fprintln(h.out, "\n"+strings.Repeat("=", 40))
	fmt.Fprintf(h.out, "YOUR TURN - %s\n", h.name)
	fmt.Fprintln(h.out, strings.Repeat("=", 40))

	slots := make([]string, 0, len(hand))
	for i, c := range hand {
		slots = append(slots, fmt.Sprintf("[%d:%s]", i+1, c))
	}
	fmt.Fprintf(h.out, "\nYour hand: %s\n", strings.Join(slots, " "))

	target := "Any"
	if view.Target != engine.CardNone {
		target = view.Target.String()
	}
	fmt.Fprintf(h.out, "Target card this round: %s\n", target)
	fmt.Fprintf(h.out, "Cards on table: %d\n", view.CardsOnTable)

	for {
		line, err := h.prompt("\nEnter card numbers to play (1-3 cards, e.g., '1 2' or '3'): ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			fmt.Fprintln(h.out, "You must play at least 1 card.")
			continue
		}

		fields := strings.Fields(line)
		if len(fields) > engine.MaxCardsPerPlay {
			fmt.Fprintln(h.out, "You can only play up to 3 cards.")
			continue
		}

		cards := make([]engine.Card, 0, len(fields))
		ok := true
		for _, f := range fields {
			idx, err := strconv.Atoi(f)
			if err != nil {
				fmt.Fprintln(h.out, "Invalid input. Please enter card numbers separated by spaces.")
				ok = false
				break
			}
			if idx < 1 || idx > len(hand) {
				fmt.Fprintf(h.out, "Invalid card number: %d\n", idx)
				ok = false
				break
			}
			cards = append(cards, hand[idx-1])
		}
		if !ok {
			continue
		}

		defaultClaim := view.Target
		if defaultClaim == engine.CardNone {
			defaultClaim = engine.CardKing
		}
		claimLine, err := h.prompt(fmt.Sprintf("What do you claim these cards are? (Q/K/A) [default: %s]: ", defaultClaim))
		if err != nil {
			return nil, err
		}
		claim := defaultClaim
		if claimLine != "" {
			c, err := engine.ParseCard(claimLine)
			if err != nil || !c.Claimable() {
				fmt.Fprintln(h.out, "Invalid claim. Use Q, K, or A.")
				continue
			}
			claim = c
		}

		act := engine.NewPlayAction(h.id, cards, claim)
		truth := "(BLUFF!)"
		if act.Truthful {
			truth = "(TRUTH)"
		}
		fmt.Fprintf(h.out, "\nYou play %d card(s): %s\n", len(cards), strings.Join(cardNames(cards), ", "))
		fmt.Fprintf(h.out, "You claim they are all: %s %s\n", claim, truth)

		confirm, err := h.prompt("Confirm? (y/n) [y]: ")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(confirm) {
		case "", "y", "yes":
			return act, nil
		}
	}
}

func (h *HumanAgent) decideDice(view engine.View) (engine.Action, error) {
	self := view.Self(h.id)
	if self == nil {
		return nil, fmt.Errorf("player %s not in view", h.id)
	}

	fmt.Fprintln(h.out, "\n"+strings.Repeat("=", 40))
	fmt.Fprintf(h.out, "YOUR TURN - %s\n", h.name)
	fmt.Fprintln(h.out, strings.Repeat("=", 40))
	fmt.Fprintf(h.out, "\nYour dice: %v\n", self.Dice)

	if cb := view.CurrentBid; cb != nil {
		fmt.Fprintf(h.out, "Current bid: %dx %d's\n", cb.Count, cb.Face)
		fmt.Fprintln(h.out, "(Your bid must be higher)")
	} else {
		fmt.Fprintln(h.out, "No current bid - you start!")
	}

	for {
		countLine, err := h.prompt("\nHow many dice? (count): ")
		if err != nil {
			return nil, err
		}
		count, err := strconv.Atoi(countLine)
		if err != nil {
			fmt.Fprintln(h.out, "Invalid input. Please enter numbers.")
			continue
		}
		if count < 1 {
			fmt.Fprintln(h.out, "Count must be at least 1.")
			continue
		}

		faceLine, err := h.prompt("What face value? (1-6): ")
		if err != nil {
			return nil, err
		}
		face, err := strconv.Atoi(faceLine)
		if err != nil {
			fmt.Fprintln(h.out, "Invalid input. Please enter numbers.")
			continue
		}
		if face < engine.MinFace || face > engine.MaxFace {
			fmt.Fprintln(h.out, "Face must be between 1 and 6.")
			continue
		}

		bid := engine.NewBidAction(h.id, count, face)
		var prev *engine.BidAction
		if cb := view.CurrentBid; cb != nil {
			p := engine.NewBidAction(cb.PlayerID, cb.Count, cb.Face)
			prev = &p
		}
		if !bid.HigherThan(prev) {
			fmt.Fprintln(h.out, "Your bid must be higher than the current bid!")
			fmt.Fprintln(h.out, "Either increase the count or keep count and increase face.")
			continue
		}

		fmt.Fprintf(h.out, "\nYou bid: %dx %d's\n", count, face)
		confirm, err := h.prompt("Confirm? (y/n) [y]: ")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(confirm) {
		case "", "y", "yes":
			return bid, nil
		}
	}
}

// DecideChallenge asks whether to call the last action a lie.
func (h *HumanAgent) DecideChallenge(_ context.Context, view engine.View, last engine.Action) (bool, error) {
	fmt.Fprintln(h.out, "\n"+strings.Repeat("-", 40))

	switch act := last.(type) {
	case engine.PlayAction:
		fmt.Fprintf(h.out, "Previous player played %d card(s)\n", len(act.Cards))
		fmt.Fprintf(h.out, "They claim: %s\n", act.Claim)
	case engine.BidAction:
		fmt.Fprintf(h.out, "Previous player bid: %dx %d's\n", act.Count, act.Face)
	}

	danger := float64(view.ShotsFired+1) / float64(engine.Chambers) * 100
	fmt.Fprintf(h.out, "\nRoulette danger: %d/%d chambers fired\n", view.ShotsFired, engine.Chambers)
	fmt.Fprintf(h.out, "If you lose, death probability: %.0f%%\n", danger)

	for {
		resp, err := h.prompt("\nChallenge? Call LIAR! (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(resp) {
		case "y", "yes", "liar", "liar!":
			fmt.Fprintln(h.out, "\nYou call: LIAR!")
			return true, nil
		case "n", "no", "":
			fmt.Fprintln(h.out, "\nYou accept the play.")
			return false, nil
		default:
			fmt.Fprintln(h.out, "Please enter 'y' to challenge or 'n' to accept.")
		}
	}
}
