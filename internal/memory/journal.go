package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Journal writes one JSON file per agent per game, shaped as a
// conversation resource so external memory tooling can ingest it.
type Journal struct {
	dir string
}

// NewJournal uses dir for event files, creating it on first dump.
func NewJournal(dir string) *Journal {
	return &Journal{dir: dir}
}

type resourceEntry struct {
	Role      string          `json:"role"`
	Content   resourceContent `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

type resourceContent struct {
	Text string `json:"text"`
}

type resourceFile struct {
	Content []resourceEntry `json:"content"`
}

// Dump writes the agent's events as game_<agent>_<timestamp>.json and
// returns the file path.
func (j *Journal) Dump(agentID string, events []Event) (string, error) {
	if j == nil {
		return "", fmt.Errorf("journal not configured")
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}

	res := resourceFile{Content: make([]resourceEntry, 0, len(events))}
	for _, ev := range events {
		text, err := json.Marshal(ev)
		if err != nil {
			return "", fmt.Errorf("encode event: %w", err)
		}
		res.Content = append(res.Content, resourceEntry{
			Role:      "system",
			Content:   resourceContent{Text: string(text)},
			CreatedAt: ev.Timestamp,
		})
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode journal: %w", err)
	}

	name := fmt.Sprintf("game_%s_%s.json", agentID, time.Now().Format("20060102_150405"))
	path := filepath.Join(j.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write journal: %w", err)
	}
	return path, nil
}
