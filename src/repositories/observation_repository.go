package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"painel/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Rows per INSERT statement; keeps the bind parameter count well under the
// Postgres limit of 65535.
const upsertBatchSize = 1000

type ObservationRepository interface {
	Upsert(ctx context.Context, indicator string, observations []models.Observation) (int, error)
	List(ctx context.Context, indicator string) ([]models.Observation, error)
	ListSince(ctx context.Context, indicator string, since time.Time) ([]models.Observation, error)
	Count(ctx context.Context, indicator string) (int, error)
	LatestDate(ctx context.Context, indicator string) (*time.Time, error)
	Bounds(ctx context.Context, indicator string) (models.Bounds, error)
}

type observationRepo struct {
	db *pgxpool.Pool
}

func NewObservationRepository(db *pgxpool.Pool) ObservationRepository {
	return &observationRepo{db: db}
}

// Upsert writes every observation in one transaction, replacing the value of
// dates already stored.
func (r *observationRepo) Upsert(ctx context.Context, indicator string, observations []models.Observation) (int, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	written := 0
	for start := 0; start < len(observations); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(observations) {
			end = len(observations)
		}
		batch := observations[start:end]

		args := make([]interface{}, 0, len(batch)*3)
		valueStrings := make([]string, 0, len(batch))
		for i, o := range batch {
			valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
			args = append(args, indicator, o.Date, o.Value)
		}

		query := `
			INSERT INTO observations (indicator, date, value)
			VALUES ` + strings.Join(valueStrings, ",") + `
			ON CONFLICT (indicator, date) DO UPDATE SET
				value = EXCLUDED.value,
				updated_at = NOW()`

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("upserting %s observations: %w", indicator, err)
		}
		written += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return written, nil
}

func (r *observationRepo) List(ctx context.Context, indicator string) ([]models.Observation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT indicator, date, value
		FROM observations
		WHERE indicator = $1
		ORDER BY date ASC
	`, indicator)
	if err != nil {
		return nil, err
	}
	return collectObservations(rows)
}

func (r *observationRepo) ListSince(ctx context.Context, indicator string, since time.Time) ([]models.Observation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT indicator, date, value
		FROM observations
		WHERE indicator = $1
		AND date >= $2
		ORDER BY date ASC
	`, indicator, since)
	if err != nil {
		return nil, err
	}
	return collectObservations(rows)
}

func collectObservations(rows pgx.Rows) ([]models.Observation, error) {
	defer rows.Close()

	var observations []models.Observation
	for rows.Next() {
		var o models.Observation
		if err := rows.Scan(&o.Indicator, &o.Date, &o.Value); err != nil {
			return nil, err
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

func (r *observationRepo) Count(ctx context.Context, indicator string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM observations WHERE indicator = $1`, indicator).Scan(&count)
	return count, err
}

// LatestDate returns nil when the indicator has no rows.
func (r *observationRepo) LatestDate(ctx context.Context, indicator string) (*time.Time, error) {
	var latest time.Time
	err := r.db.QueryRow(ctx, `
		SELECT date
		FROM observations
		WHERE indicator = $1
		ORDER BY date DESC
		LIMIT 1
	`, indicator).Scan(&latest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &latest, nil
}

func (r *observationRepo) Bounds(ctx context.Context, indicator string) (models.Bounds, error) {
	var b models.Bounds
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), MIN(date), MAX(date)
		FROM observations
		WHERE indicator = $1
	`, indicator).Scan(&b.Count, &b.First, &b.Last)
	return b, err
}
