package sentiment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/logger"
)

// Repository appends classifier verdicts to the sentiments table.
// Append-only side channel: the pipeline never reads it back.
type Repository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewRepository creates a new sentiment repository
func NewRepository(pool *pgxpool.Pool, log *logger.Logger) *Repository {
	return &Repository{
		pool:   pool,
		logger: log,
	}
}

// EnsureSchema creates the sentiments table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sentiments (
			id SERIAL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL DEFAULT '',
			headline TEXT NOT NULL,
			sentiment VARCHAR(15) NOT NULL,
			confidence DOUBLE PRECISION,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure sentiments schema: %w", err)
	}
	return nil
}

// Record batch-inserts the verdicts collected during a run.
func (r *Repository) Record(ctx context.Context, verdicts []contracts.SentimentVerdict) error {
	if len(verdicts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, v := range verdicts {
		batch.Queue(
			`INSERT INTO sentiments (symbol, headline, sentiment, confidence, created_at) VALUES ($1, $2, $3, $4, $5)`,
			v.Symbol, v.Headline, string(v.Label), v.Confidence, v.ScoredAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range verdicts {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert sentiment record: %w", err)
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"records": len(verdicts),
	}).Info("Sentiment verdicts recorded")

	return nil
}

// NopRecorder discards verdicts. Used when no database is configured.
type NopRecorder struct{}

// Record drops the verdicts
func (NopRecorder) Record(ctx context.Context, verdicts []contracts.SentimentVerdict) error {
	return nil
}
