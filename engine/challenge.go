package engine

import "fmt"

// HandleChallenge resolves an accusation against the most recent action.
// Deck mode reads the challenged play's recorded truthfulness; dice mode
// counts the claimed face across all live dice. The liar (or the mistaken
// challenger) faces exactly one roulette trial. A fatal trial eliminates
// the loser and resets the roulette to a fresh cylinder; a survived trial
// bumps the loser's survival tally. Round and game transitions stay with
// the caller.
func (g *Game) HandleChallenge(challengerID, challengedID string) (ChallengeResult, error) {
	var res ChallengeResult

	if g.over {
		return res, fmt.Errorf("game is over")
	}

	challenger := g.playerByID(challengerID)
	if challenger == nil {
		return res, fmt.Errorf("unknown challenger %q", challengerID)
	}
	if !challenger.Alive() {
		return res, fmt.Errorf("challenger %q is eliminated", challengerID)
	}
	challenged := g.playerByID(challengedID)
	if challenged == nil {
		return res, fmt.Errorf("unknown challenged player %q", challengedID)
	}
	if challengerID == challengedID {
		return res, fmt.Errorf("player %q cannot challenge themselves", challengerID)
	}

	last := g.LastAction()
	if last == nil {
		return res, ErrNothingToChallenge
	}
	if last.Actor() != challengedID {
		return res, fmt.Errorf("challenge names %q but the last action is by %q", challengedID, last.Actor())
	}

	var wasBluff bool
	payload := map[string]interface{}{"challenged": challengedID}

	switch g.mode {
	case ModeDeck:
		play := g.plays[len(g.plays)-1]
		wasBluff = !play.Truthful
	case ModeDice:
		lying, actual, claimed, err := g.dice.ResolveChallenge(g.players)
		if err != nil {
			return res, err
		}
		wasBluff = lying
		payload["actual"] = actual
		payload["claimed"] = claimed
	}

	loser := challenged
	if !wasBluff {
		loser = challenger
	}

	survived, chamber := g.roulette.Fire()

	res = ChallengeResult{
		ChallengerID: challengerID,
		ChallengedID: challengedID,
		WasBluff:     wasBluff,
		LoserID:      loser.ID,
		Survived:     survived,
		Chamber:      chamber,
	}
	g.challenges = append(g.challenges, res)

	payload["was_bluff"] = wasBluff
	payload["loser"] = loser.ID
	payload["survived"] = survived
	payload["chamber"] = chamber
	g.emit(EventChallenge, challengerID, payload)

	if survived {
		loser.Survived++
		return res, nil
	}

	loser.Status = StatusEliminated
	g.roulette.Reset()

	by := challengedID
	if loser.ID == challengedID {
		by = challengerID
	}
	g.emit(EventElimination, loser.ID, map[string]interface{}{
		"eliminated": loser.ID,
		"by":         by,
	})

	return res, nil
}

// Challenges returns a copy of the game-long challenge history.
func (g *Game) Challenges() []ChallengeResult {
	out := make([]ChallengeResult, len(g.challenges))
	copy(out, g.challenges)
	return out
}
