// Package session drives one game from first deal to archive: it pairs
// the engine with the seated agents, renders through the terminal UI,
// and flushes agent memory when the game ends.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/raucvr/liarsbar/engine"
	"github.com/raucvr/liarsbar/internal/agent"
	"github.com/raucvr/liarsbar/internal/memory"
	"github.com/raucvr/liarsbar/internal/termui"
)

const finalizeTimeout = 5 * time.Second

// Config wires one session together. Archive and Recorder may be nil.
type Config struct {
	Game   *engine.Game
	Agents []agent.Agent
	UI     *termui.UI
	// HumanID marks the interactive seat; empty means fully automated.
	HumanID string
	// Labels annotate the roster display per seat id.
	Labels   map[string]string
	BotPause time.Duration
	Archive  *memory.Archive
	Recorder *Recorder
}

// Session runs a single game to completion.
type Session struct {
	game     *engine.Game
	agents   []agent.Agent
	byID     map[string]agent.Agent
	ui       *termui.UI
	humanID  string
	labels   map[string]string
	botPause time.Duration
	archive  *memory.Archive
	recorder *Recorder
	gameID   uuid.UUID
	log      *logrus.Entry
}

// New builds a session. The game must not have started yet.
func New(cfg Config) *Session {
	byID := make(map[string]agent.Agent, len(cfg.Agents))
	for _, a := range cfg.Agents {
		byID[a.PlayerID()] = a
	}
	gameID := uuid.New()
	return &Session{
		game:     cfg.Game,
		agents:   cfg.Agents,
		byID:     byID,
		ui:       cfg.UI,
		humanID:  cfg.HumanID,
		labels:   cfg.Labels,
		botPause: cfg.BotPause,
		archive:  cfg.Archive,
		recorder: cfg.Recorder,
		gameID:   gameID,
		log:      logrus.WithField("game_id", gameID.String()),
	}
}

// GameID identifies this session in the archive.
func (s *Session) GameID() uuid.UUID { return s.gameID }

// Run plays the game until someone wins or the context is canceled.
func (s *Session) Run(ctx context.Context) error {
	s.log.WithFields(logrus.Fields{
		"mode": s.game.Mode().String(),
		"seed": s.game.Seed(),
	}).Info("game started")

	s.game.SetupRound()

	for !s.game.Over() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cont, err := s.runTurn(ctx)
		if err != nil {
			return err
		}
		if !cont || s.game.CheckGameOver() {
			break
		}
	}
	return s.finish()
}

// runTurn plays one seat's turn. Returns false when the game is done.
func (s *Session) runTurn(ctx context.Context) (bool, error) {
	currentID := s.game.CurrentPlayerID()
	view := s.game.ViewFor(currentID)
	self := view.Self(currentID)

	// Eliminated seats forfeit the turn outright.
	if self == nil || !self.Alive {
		s.game.AdvanceTurn()
		return true, nil
	}

	ag := s.byID[currentID]
	if ag == nil {
		s.ui.ShowError(fmt.Sprintf("No agent found for player %s", currentID))
		return false, nil
	}

	isHuman := currentID == s.humanID
	if isHuman {
		s.ui.RenderFullState(view, currentID, s.labels)
	} else {
		s.ui.ShowThinking(s.game.PlayerName(currentID))
	}

	// Challenge window before the seat acts.
	if s.game.CanChallenge() {
		last := s.game.LastAction()
		if isHuman {
			s.ui.RenderAction(view, last)
		}
		challenge, err := ag.DecideChallenge(ctx, view, last)
		if err != nil {
			return false, err
		}
		if challenge {
			return s.resolveChallenge(currentID, isHuman)
		}
	}

	// A deck seat that has shed its whole hand passes until the round
	// resolves.
	if view.Mode == engine.ModeDeck && len(self.Hand) == 0 {
		s.ui.ShowInfo(fmt.Sprintf("%s has no cards left - turn passes", s.game.PlayerName(currentID)))
		s.game.AdvanceTurn()
		return true, nil
	}

	act, err := ag.DecideAction(ctx, view)
	if err != nil {
		return false, err
	}
	if err := s.game.ProcessAction(act); err != nil {
		// Same seat retries with a fresh prompt.
		s.ui.ShowError(err.Error())
		return true, nil
	}
	s.ui.RenderAction(s.game.ViewFor(""), act)

	if s.game.CheckRoundOver() {
		s.game.SetupRound()
	}
	s.game.AdvanceTurn()

	if !isHuman && s.botPause > 0 {
		select {
		case <-time.After(s.botPause):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return true, nil
}

func (s *Session) resolveChallenge(challengerID string, isHuman bool) (bool, error) {
	challengedID := s.game.PreviousActorID()
	res, err := s.game.HandleChallenge(challengerID, challengedID)
	if err != nil {
		s.ui.ShowError(err.Error())
		return true, nil
	}
	s.ui.RenderChallengeResult(s.game.ViewFor(""), res)

	if s.game.CheckGameOver() {
		return false, nil
	}

	// The table clears after every showdown. The next runTurn moves the
	// turn along if the challenger did not survive it.
	s.game.SetupRound()

	if isHuman {
		s.ui.WaitForEnter("")
	}
	return true, nil
}

// finish renders the result and flushes memory and the archive.
func (s *Session) finish() error {
	view := s.game.ViewFor("")
	if view.Winner == "" {
		return nil
	}
	s.ui.RenderGameOver(view)
	s.log.WithFields(logrus.Fields{
		"winner": view.Winner,
		"rounds": view.Round,
	}).Info("game over")

	stats := make(map[string]interface{}, len(view.Players))
	for _, p := range view.Players {
		stats[p.ID] = map[string]interface{}{
			"survived":         p.Alive,
			"bullets_survived": p.Survived,
		}
	}

	for _, ag := range s.agents {
		llm, ok := ag.(*agent.LLMAgent)
		if !ok {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
		if err := llm.Finalize(ctx, view.Winner, view.Round, stats); err != nil {
			s.log.WithError(err).WithField("agent_id", llm.PlayerID()).Warn("failed to finalize agent memory")
		}
		cancel()
	}

	if s.archive != nil && s.recorder != nil {
		ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
		defer cancel()
		err := s.archive.StoreGame(ctx, s.gameID, view.Mode.String(), s.game.Seed(), view.Winner, view.Round, s.recorder.Events())
		if err != nil {
			s.log.WithError(err).Warn("failed to archive game")
		}
	}
	return nil
}
