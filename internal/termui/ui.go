// Package termui renders the game to a terminal.
package termui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/raucvr/liarsbar/engine"
)

const defaultWidth = 60

// UI draws game state and results. Seat labels ("[Human]", the model
// tail for LLM seats) come from the caller.
type UI struct {
	in    *bufio.Reader
	out   io.Writer
	width int
}

// NewUI wraps the given streams. Pass the same reader the human agent
// uses so buffered input is not split between them.
func NewUI(in io.Reader, out io.Writer) *UI {
	return &UI{
		in:    bufio.NewReader(in),
		out:   out,
		width: defaultWidth,
	}
}

// Clear wipes the screen and homes the cursor.
func (u *UI) Clear() {
	fmt.Fprint(u.out, "\x1b[2J\x1b[H")
}

const title = `
╔════════════════════════════════╗
║           LIAR'S BAR           ║
║        The Bluffing Game       ║
╚════════════════════════════════╝`

// Title prints the banner.
func (u *UI) Title() {
	fmt.Fprintln(u.out, title)
}

func (u *UI) line(ch string, width int) string {
	return strings.Repeat(ch, width)
}

func (u *UI) centered(text string) {
	pad := (u.width - len([]rune(text))) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(u.out, "%s%s\n", strings.Repeat(" ", pad), text)
}

func nameOf(v engine.View, id string) string {
	for _, p := range v.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}

// RenderFullState clears the screen and draws everything: header,
// roster, the mode panel, and the roulette panel. SelfID picks whose
// hidden hand or dice to reveal.
func (u *UI) RenderFullState(v engine.View, selfID string, labels map[string]string) {
	u.Clear()
	u.renderHeader(v)
	u.renderPlayers(v, labels)
	if v.Mode == engine.ModeDeck {
		u.renderDeck(v, selfID)
	} else {
		u.renderDice(v, selfID)
	}
	u.renderRoulette(v)
}

func (u *UI) renderHeader(v engine.View) {
	mode := "LIAR'S DECK"
	if v.Mode == engine.ModeDice {
		mode = "LIAR'S DICE"
	}
	fmt.Fprintln(u.out, "╔"+u.line("═", u.width-2)+"╗")
	u.centered(fmt.Sprintf("LIAR'S BAR - %s", mode))
	u.centered(fmt.Sprintf("Round: %d", v.Round))
	fmt.Fprintln(u.out, "╚"+u.line("═", u.width-2)+"╝")
}

func (u *UI) renderPlayers(v engine.View, labels map[string]string) {
	fmt.Fprintln(u.out, "\nPLAYERS:")
	fmt.Fprintln(u.out, u.line("─", 40))

	for _, p := range v.Players {
		status := "●"
		if !p.Alive {
			status = "○"
		}
		cur := "  "
		if p.ID == v.Current {
			cur = "->"
		}
		label := ""
		if l := labels[p.ID]; l != "" {
			label = " [" + l + "]"
		}
		bullets := ""
		if p.Survived > 0 {
			bullets = fmt.Sprintf(" (survived: %d)", p.Survived)
		}
		fmt.Fprintf(u.out, "  %s %s %s%s%s\n", cur, status, p.Name, label, bullets)
	}
	fmt.Fprintln(u.out)
}

func (u *UI) renderDeck(v engine.View, selfID string) {
	fmt.Fprintln(u.out, "\nDECK MODE:")
	fmt.Fprintln(u.out, u.line("─", 40))

	if v.Target != engine.CardNone {
		fmt.Fprintf(u.out, "  Target card: [%s]\n", v.Target)
	}
	fmt.Fprintf(u.out, "  Cards on table: %d\n", v.CardsOnTable)

	if self := v.Self(selfID); self != nil && len(self.Hand) > 0 {
		names := make([]string, 0, len(self.Hand))
		for _, c := range self.Hand {
			names = append(names, c.String())
		}
		fmt.Fprintf(u.out, "\n  Your hand: %s\n", strings.Join(names, " "))
		fmt.Fprintf(u.out, "  (%d cards)\n", len(self.Hand))
	}

	if len(v.Plays) > 0 {
		fmt.Fprintln(u.out, "\n  Recent plays:")
		plays := v.Plays
		if len(plays) > 5 {
			plays = plays[len(plays)-5:]
		}
		for _, p := range plays {
			fmt.Fprintf(u.out, "    • %s: %d card(s) → [%s]\n", nameOf(v, p.PlayerID), p.Count, p.Claim)
		}
	}
	fmt.Fprintln(u.out)
}

func (u *UI) renderDice(v engine.View, selfID string) {
	fmt.Fprintln(u.out, "\nDICE MODE:")
	fmt.Fprintln(u.out, u.line("─", 40))

	if cb := v.CurrentBid; cb != nil {
		fmt.Fprintf(u.out, "  Current bid: %dx %d's by %s\n", cb.Count, cb.Face, nameOf(v, cb.PlayerID))
	} else {
		fmt.Fprintln(u.out, "  No bid yet - first player starts")
	}

	if self := v.Self(selfID); self != nil && len(self.Dice) > 0 {
		fmt.Fprintf(u.out, "\n  Your dice: %v\n", self.Dice)
	}

	if len(v.Bids) > 0 {
		fmt.Fprintln(u.out, "\n  Recent bids:")
		bids := v.Bids
		if len(bids) > 5 {
			bids = bids[len(bids)-5:]
		}
		for _, b := range bids {
			fmt.Fprintf(u.out, "    • %s: %dx %d's\n", nameOf(v, b.PlayerID), b.Count, b.Face)
		}
	}
	fmt.Fprintln(u.out)
}

func (u *UI) renderRoulette(v engine.View) {
	shots := v.ShotsFired
	deathProb := 100.0
	if shots < engine.Chambers {
		deathProb = float64(shots+1) / float64(engine.Chambers) * 100
	}

	fmt.Fprintln(u.out, "\nRUSSIAN ROULETTE:")
	fmt.Fprintln(u.out, u.line("─", 40))

	var chambers strings.Builder
	for i := 0; i < engine.Chambers; i++ {
		if i < shots {
			chambers.WriteString("○ ")
		} else {
			chambers.WriteString("● ")
		}
	}
	fmt.Fprintf(u.out, "  Chambers: %s\n", chambers.String())
	fmt.Fprintf(u.out, "  Shots fired: %d/%d\n", shots, engine.Chambers)
	fmt.Fprintf(u.out, "  Next shot death probability: %.0f%%\n\n", deathProb)
}

// RenderAction announces the play or bid just taken.
func (u *UI) RenderAction(v engine.View, act engine.Action) {
	name := nameOf(v, act.Actor())

	fmt.Fprintln(u.out, "\n"+u.line("-", 40))
	switch a := act.(type) {
	case engine.PlayAction:
		fmt.Fprintf(u.out, "  %s plays %d card(s)\n", name, len(a.Cards))
		fmt.Fprintf(u.out, "  Claims: [%s]\n", a.Claim)
	case engine.BidAction:
		fmt.Fprintf(u.out, "  %s bids:\n", name)
		fmt.Fprintf(u.out, "  %dx %d's\n", a.Count, a.Face)
	}
	fmt.Fprintln(u.out, u.line("-", 40))
}

// RenderChallengeResult shows the reveal and the trigger pull.
func (u *UI) RenderChallengeResult(v engine.View, res engine.ChallengeResult) {
	challenger := nameOf(v, res.ChallengerID)
	challenged := nameOf(v, res.ChallengedID)
	loser := nameOf(v, res.LoserID)

	fmt.Fprintln(u.out, "\n"+u.line("!", u.width))
	u.centered("CHALLENGE!")
	fmt.Fprintln(u.out, u.line("!", u.width))

	fmt.Fprintf(u.out, "\n  %s challenges %s!\n\n", challenger, challenged)

	if res.WasBluff {
		fmt.Fprintln(u.out, "  REVEAL: It WAS a BLUFF!")
		fmt.Fprintf(u.out, "  %s was lying!\n", challenged)
	} else {
		fmt.Fprintln(u.out, "  REVEAL: It was TRUTH!")
		fmt.Fprintf(u.out, "  %s was wrong to challenge!\n", challenger)
	}

	fmt.Fprintf(u.out, "\n  %s must face the revolver...\n", loser)
	fmt.Fprintf(u.out, "  Chamber #%d\n", res.Chamber)

	if res.Survived {
		fmt.Fprintln(u.out, "\n  *CLICK* ... Empty chamber!")
		fmt.Fprintf(u.out, "  %s SURVIVES!\n", loser)
	} else {
		fmt.Fprintln(u.out, "\n  *BANG*")
		fmt.Fprintf(u.out, "  %s is ELIMINATED!\n", loser)
	}

	fmt.Fprintln(u.out, "\n"+u.line("!", u.width))
}

// RenderGameOver shows the winner and the standings, winner first.
func (u *UI) RenderGameOver(v engine.View) {
	fmt.Fprintln(u.out, "\n"+u.line("=", u.width))
	u.centered("GAME OVER!")
	fmt.Fprintln(u.out, u.line("=", u.width))

	fmt.Fprintf(u.out, "\n  WINNER: %s!\n", nameOf(v, v.Winner))

	fmt.Fprintln(u.out, "\n  Final standings:")
	fmt.Fprintln(u.out, u.line("─", 40))

	rank := 1
	for _, p := range v.Players {
		if p.ID == v.Winner {
			fmt.Fprintf(u.out, "  %d. %s - WINNER\n", rank, p.Name)
			rank++
		}
	}
	for _, p := range v.Players {
		if p.ID != v.Winner {
			fmt.Fprintf(u.out, "  %d. %s - Eliminated\n", rank, p.Name)
			rank++
		}
	}

	fmt.Fprintln(u.out, "\n"+u.line("=", u.width))
}

// WaitForEnter blocks until the player presses Enter.
func (u *UI) WaitForEnter(message string) {
	if message == "" {
		message = "Press Enter to continue..."
	}
	fmt.Fprintf(u.out, "\n%s", message)
	_, _ = u.in.ReadString('\n')
}

// ShowThinking marks an AI seat as busy.
func (u *UI) ShowThinking(name string) {
	fmt.Fprintf(u.out, "\n  %s is thinking...\n", name)
}

// ShowError reports a rejected action or failure.
func (u *UI) ShowError(message string) {
	fmt.Fprintf(u.out, "\n  Error: %s\n", message)
}

// ShowInfo prints a neutral status line.
func (u *UI) ShowInfo(message string) {
	fmt.Fprintf(u.out, "\n  %s\n", message)
}
