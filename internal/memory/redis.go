package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store is the cross-game recall the LLM agents consult before acting.
type Store interface {
	Remember(ctx context.Context, agentID string, events []Event) error
	Retrieve(ctx context.Context, agentID, query string, topK int) ([]string, error)
}

// recallCap bounds the list per agent so long-running installs do not
// grow without limit.
const recallCap = 512

const defaultTopK = 5

// RecallStore keeps agent memories in Redis lists, newest first.
type RecallStore struct {
	rdb *redis.Client
}

// NewRecallStore connects and verifies the server is reachable.
func NewRecallStore(ctx context.Context, addr, password string, db int) (*RecallStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RecallStore{rdb: rdb}, nil
}

// Close releases the underlying connection pool.
func (s *RecallStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func recallKey(agentID string) string {
	return "liarsbar:memory:" + agentID
}

// Remember prepends the events to the agent's list and trims it to the
// retention cap. A nil store remembers nothing.
func (s *RecallStore) Remember(ctx context.Context, agentID string, events []Event) error {
	if s == nil || s.rdb == nil || len(events) == 0 {
		return nil
	}

	vals := make([]interface{}, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode memory event: %w", err)
		}
		vals = append(vals, data)
	}

	key := recallKey(agentID)
	if err := s.rdb.LPush(ctx, key, vals...).Err(); err != nil {
		return fmt.Errorf("push memory events: %w", err)
	}
	if err := s.rdb.LTrim(ctx, key, 0, recallCap-1).Err(); err != nil {
		return fmt.Errorf("trim memory list: %w", err)
	}
	return nil
}

// Retrieve returns up to topK stored entries ranked by how many query
// terms they contain. Entries matching no term are dropped; ties keep
// the newer entry first.
func (s *RecallStore) Retrieve(ctx context.Context, agentID, query string, topK int) ([]string, error) {
	if s == nil || s.rdb == nil {
		return nil, nil
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	entries, err := s.rdb.LRange(ctx, recallKey(agentID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read memory list: %w", err)
	}
	return rankEntries(entries, query, topK), nil
}

// rankEntries scores entries by query term frequency and keeps the
// topK best. Ties keep the earlier (newer) entry first; entries
// matching no term are dropped.
func rankEntries(entries []string, query string, topK int) []string {
	terms := strings.Fields(strings.ToLower(query))
	type scored struct {
		entry string
		score int
	}
	var hits []scored
	for _, e := range entries {
		low := strings.ToLower(e)
		score := 0
		for _, t := range terms {
			score += strings.Count(low, t)
		}
		if score > 0 {
			hits = append(hits, scored{entry: e, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if len(hits) > topK {
		hits = hits[:topK]
	}
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.entry)
	}
	return out
}

// RememberAsync stores events without blocking the game loop. Failures
// are logged and otherwise ignored.
func RememberAsync(store Store, agentID string, events []Event, log *logrus.Entry) {
	if store == nil || len(events) == 0 {
		return
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.Remember(ctx, agentID, events); err != nil {
			log.WithError(err).WithField("agent_id", agentID).Warn("failed to store agent memory")
		}
	}()
}
