package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// TourRepository remembers which users have finished or dismissed the
// introductory tour of the map page.
type TourRepository interface {
	HasCompletedTour(ctx context.Context, userID string) (bool, error)
	SetTourCompleted(ctx context.Context, userID string) error
}

// DBTourRepository implements TourRepository using MySQL.
type DBTourRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBTourRepository creates a new DBTourRepository.
func NewDBTourRepository(db *sqlx.DB) *DBTourRepository {
	return &DBTourRepository{db: db, now: time.Now}
}

type tourCompletion struct {
	UserID      string    `db:"user_id"`
	CompletedAt time.Time `db:"completed_at"`
}

func (r *DBTourRepository) HasCompletedTour(ctx context.Context, userID string) (bool, error) {
	var completion tourCompletion
	err := r.db.GetContext(ctx, &completion, "SELECT user_id, completed_at FROM tour_completions WHERE user_id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db.GetContext(tour_completion) > %w", err)
	}
	return true, nil
}

func (r *DBTourRepository) SetTourCompleted(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tour_completions (user_id, completed_at) VALUES (?, ?) ON DUPLICATE KEY UPDATE completed_at = VALUES(completed_at)",
		userID, r.now().UTC())
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert tour_completion) > %w", err)
	}
	return nil
}
