// Liar's Bar: one human against three LLM-backed opponents in a game
// of cards, dice, and a revolver.
//
// Usage:
//
//	export OPENROUTER_API_KEY=your_api_key
//	liarsbar
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/raucvr/liarsbar/engine"
	"github.com/raucvr/liarsbar/internal/agent"
	"github.com/raucvr/liarsbar/internal/config"
	"github.com/raucvr/liarsbar/internal/memory"
	"github.com/raucvr/liarsbar/internal/session"
	"github.com/raucvr/liarsbar/internal/termui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\n\nGame interrupted. Goodbye!")
			return
		}
		logrus.WithError(err).Fatal("game failed")
	}
	fmt.Println("\nThanks for playing Liar's Bar!")
}

func run(ctx context.Context, cfg config.Config) error {
	in := bufio.NewReader(os.Stdin)
	ui := termui.NewUI(in, os.Stdout)

	mode, err := pickMode(cfg, ui, in)
	if err != nil {
		return err
	}

	// Seats: the human (or the house bull in headless runs) plus the
	// three model personas.
	var (
		players []engine.Player
		agents  []agent.Agent
		labels  = make(map[string]string)
		humanID string
	)

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = uint64(time.Now().UnixNano())
	}

	if cfg.Headless {
		toar, _ := agent.PersonalityByKey("toar")
		players = append(players, engine.Player{ID: toar.Key, Name: toar.Name})
		agents = append(agents, agent.NewRandomAgent(toar.Key, toar, baseSeed))
	} else {
		name, err := promptName(cfg, ui, in)
		if err != nil {
			return err
		}
		humanID = "human"
		players = append(players, engine.Player{ID: humanID, Name: name})
		agents = append(agents, agent.NewHumanAgent(humanID, name, in, os.Stdout))
		labels[humanID] = "Human"
	}

	// Memory integrations degrade to local-only when unreachable.
	journal := memory.NewJournal(cfg.MemoryDir)

	var store memory.Store
	if cfg.RedisAddr != "" {
		rs, err := memory.NewRecallStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logrus.WithError(err).Warn("recall store unavailable, agents play without memories")
		} else {
			defer rs.Close()
			store = rs
		}
	}

	var archive *memory.Archive
	if cfg.DatabaseURL != "" {
		a, err := memory.NewArchive(ctx, cfg.DatabaseURL)
		if err != nil {
			logrus.WithError(err).Warn("archive unavailable, game will not be stored")
		} else {
			defer a.Close()
			archive = a
		}
	}

	var client *agent.Client
	if cfg.OpenRouterAPIKey != "" {
		client = agent.NewClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterTimeout)
	} else {
		logrus.Warn("OPENROUTER_API_KEY not set, AI opponents play on built-in policies")
	}

	recorder := session.NewRecorder()
	sinks := engine.MultiSink{recorder}

	seat := uint64(1)
	for _, p := range agent.Personalities() {
		if p.ModelID == "" {
			// The house persona only seats in headless runs.
			continue
		}
		players = append(players, engine.Player{ID: p.Key, Name: p.Name})
		labels[p.Key] = modelTail(p.ModelID)

		fallback := agent.NewRandomAgent(p.Key, p, baseSeed+seat)
		seat++
		if client != nil {
			llm := agent.NewLLMAgent(p.Key, p, client, fallback, store, journal)
			agents = append(agents, llm)
			sinks = append(sinks, llm)
		} else {
			agents = append(agents, fallback)
		}
	}

	if !cfg.Headless {
		fmt.Println("\nYou will be playing against 3 AI opponents:")
		for _, p := range agent.Personalities() {
			if p.ModelID == "" {
				continue
			}
			fmt.Printf("  • %s (%s) - %s\n", p.Name, p.Character, p.ModelID)
		}
		fmt.Println()
		ui.WaitForEnter("Press Enter to start the game...")
	}

	game, err := engine.NewGame(engine.Config{
		Mode:    mode,
		Players: players,
		Seed:    cfg.Seed,
		Sink:    sinks,
	})
	if err != nil {
		return fmt.Errorf("set up game: %w", err)
	}

	sess := session.New(session.Config{
		Game:     game,
		Agents:   agents,
		UI:       ui,
		HumanID:  humanID,
		Labels:   labels,
		BotPause: cfg.BotPause,
		Archive:  archive,
		Recorder: recorder,
	})
	return sess.Run(ctx)
}

func pickMode(cfg config.Config, ui *termui.UI, in *bufio.Reader) (engine.Mode, error) {
	if cfg.Mode != "" {
		mode, err := engine.ParseMode(cfg.Mode)
		if err != nil {
			return 0, fmt.Errorf("LIARSBAR_MODE: %w", err)
		}
		return mode, nil
	}
	if cfg.Headless {
		return engine.ModeDeck, nil
	}

	ui.Clear()
	ui.Title()
	fmt.Println("\nSELECT GAME MODE:")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println("  1. Liar's Deck (Poker Bluffing)")
	fmt.Println("     - Play cards Q/K/A/Joker")
	fmt.Println("     - Claim cards match the round target")
	fmt.Println()
	fmt.Println("  2. Liar's Dice (Dice Bluffing)")
	fmt.Println("     - Roll and hide 5 dice")
	fmt.Println("     - Bid on total count across all players")
	fmt.Println()

	for {
		fmt.Print("Enter choice (1 or 2): ")
		line, err := in.ReadString('\n')
		choice := strings.TrimSpace(line)
		if err != nil && choice == "" {
			return 0, fmt.Errorf("read mode choice: %w", err)
		}
		switch choice {
		case "1":
			return engine.ModeDeck, nil
		case "2":
			return engine.ModeDice, nil
		}
		fmt.Println("Invalid choice. Please enter 1 or 2.")
	}
}

func promptName(cfg config.Config, ui *termui.UI, in *bufio.Reader) (string, error) {
	if cfg.HumanName != "" {
		return cfg.HumanName, nil
	}

	ui.Clear()
	ui.Title()
	fmt.Println("\nPLAYER SETUP:")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Print("Enter your name: ")

	line, err := in.ReadString('\n')
	name := strings.TrimSpace(line)
	if err != nil && name == "" {
		return "", fmt.Errorf("read player name: %w", err)
	}
	if name == "" {
		name = "Player"
	}
	fmt.Printf("\nWelcome, %s!\n", name)
	return name, nil
}

func modelTail(modelID string) string {
	if i := strings.LastIndex(modelID, "/"); i >= 0 {
		return modelID[i+1:]
	}
	return modelID
}
