package repositories

import (
	"context"
	"errors"
	"time"

	"painel/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RefreshLogRepository interface {
	MarkRefresh(ctx context.Context, indicator string, at time.Time, rows int) error
	GetLastRefresh(ctx context.Context, indicator string) (*models.RefreshLog, error)
	Cleanup(ctx context.Context, before time.Time) (int, error)
}

type refreshLogRepo struct {
	DB *pgxpool.Pool
}

func NewRefreshLogRepository(db *pgxpool.Pool) RefreshLogRepository {
	return &refreshLogRepo{DB: db}
}

func (r *refreshLogRepo) MarkRefresh(ctx context.Context, indicator string, at time.Time, rows int) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO refresh_logs (indicator, refreshed_at, rows)
		VALUES ($1, $2, $3)`, indicator, at, rows)
	return err
}

// GetLastRefresh returns nil when the indicator was never refreshed.
func (r *refreshLogRepo) GetLastRefresh(ctx context.Context, indicator string) (*models.RefreshLog, error) {
	var l models.RefreshLog
	err := r.DB.QueryRow(ctx, `
		SELECT id, indicator, refreshed_at, rows, created_at
		FROM refresh_logs
		WHERE indicator = $1
		ORDER BY refreshed_at DESC
		LIMIT 1
	`, indicator).Scan(&l.ID, &l.Indicator, &l.RefreshedAt, &l.Rows, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// Cleanup deletes log rows older than before and reports how many went.
func (r *refreshLogRepo) Cleanup(ctx context.Context, before time.Time) (int, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM refresh_logs WHERE refreshed_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
