package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Archive stores finished games in Postgres for later analysis.
type Archive struct {
	pool *pgxpool.Pool
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS game_archive (
	id          UUID PRIMARY KEY,
	mode        TEXT NOT NULL,
	seed        BIGINT NOT NULL,
	winner_id   TEXT NOT NULL,
	rounds      INT NOT NULL,
	events      JSONB NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewArchive connects, verifies the server, and ensures the table.
func NewArchive(ctx context.Context, databaseURL string) (*Archive, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, archiveSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure archive schema: %w", err)
	}
	return &Archive{pool: pool}, nil
}

// Close releases the connection pool.
func (a *Archive) Close() {
	if a != nil && a.pool != nil {
		a.pool.Close()
	}
}

// StoreGame archives one finished game with its full event history.
// The seed is stored by bit pattern; BIGINT has no unsigned form.
func (a *Archive) StoreGame(ctx context.Context, gameID uuid.UUID, mode string, seed uint64, winnerID string, rounds int, events []Event) error {
	if a == nil || a.pool == nil {
		return nil
	}

	history, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode game history: %w", err)
	}

	_, err = a.pool.Exec(ctx,
		`INSERT INTO game_archive (id, mode, seed, winner_id, rounds, events)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		gameID, mode, int64(seed), winnerID, rounds, history,
	)
	if err != nil {
		return fmt.Errorf("insert game archive: %w", err)
	}
	return nil
}
