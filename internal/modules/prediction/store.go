// README: Training run audit store backed by PostgreSQL.
package prediction

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

type Run struct {
	ID             int64
	StartedAt      time.Time
	FinishedAt     time.Time
	RowsParsed     int
	RowsSkipped    int
	PriceRows      int
	AcceptanceRows int
	Status         string
	Error          string
}

type RunStore struct {
	db *pgxpool.Pool
}

func NewRunStore(db *pgxpool.Pool) *RunStore {
	return &RunStore{db: db}
}

// EnsureSchema creates the audit table when it does not exist yet.
func (s *RunStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS training_runs (
			id              BIGSERIAL PRIMARY KEY,
			started_at      TIMESTAMPTZ NOT NULL,
			finished_at     TIMESTAMPTZ NOT NULL,
			rows_parsed     INTEGER NOT NULL,
			rows_skipped    INTEGER NOT NULL,
			price_rows      INTEGER NOT NULL,
			acceptance_rows INTEGER NOT NULL,
			status          TEXT NOT NULL,
			error           TEXT NOT NULL DEFAULT ''
		)`)
	return err
}

func (s *RunStore) Record(ctx context.Context, r *Run) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO training_runs (
			started_at, finished_at, rows_parsed, rows_skipped,
			price_rows, acceptance_rows, status, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.StartedAt, r.FinishedAt, r.RowsParsed, r.RowsSkipped,
		r.PriceRows, r.AcceptanceRows, r.Status, r.Error,
	)
	return err
}

// Latest returns the most recent run, or nil when none is recorded.
func (s *RunStore) Latest(ctx context.Context) (*Run, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, started_at, finished_at, rows_parsed, rows_skipped,
		       price_rows, acceptance_rows, status, error
		FROM training_runs
		ORDER BY started_at DESC
		LIMIT 1`)

	var r Run
	err := row.Scan(
		&r.ID, &r.StartedAt, &r.FinishedAt, &r.RowsParsed, &r.RowsSkipped,
		&r.PriceRows, &r.AcceptanceRows, &r.Status, &r.Error,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
