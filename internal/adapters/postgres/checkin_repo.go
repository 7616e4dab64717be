package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/samirrijal/fitpass/internal/core/domain"
)

// CheckInRepo implements ports.CheckInRepository with pgx.
type CheckInRepo struct {
	db *DB
}

// NewCheckInRepo creates a new CheckInRepo.
func NewCheckInRepo(db *DB) *CheckInRepo {
	return &CheckInRepo{db: db}
}

// Create inserts a check-in with validated_at = null. The unique index on
// (user, UTC day) turns a concurrent same-day insert into
// ErrMaxNumberOfCheckIns; a missing user or gym surfaces as
// ErrResourceNotFound via the foreign keys.
func (r *CheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO check_ins (user_id, gym_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, c.UserID, c.GymID).Scan(&c.ID, &c.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation on (user_id, day)
			return domain.ErrMaxNumberOfCheckIns
		case "23503": // foreign_key_violation
			return domain.ErrResourceNotFound
		}
	}
	return err
}

// GetByID returns a check-in by UUID.
func (r *CheckInRepo) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	var c domain.CheckIn
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, gym_id, created_at, validated_at
		FROM check_ins WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.GymID, &c.CreatedAt, &c.ValidatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByUserOnDay returns the user's check-in on the given UTC calendar day,
// or nil if there is none.
func (r *CheckInRepo) FindByUserOnDay(ctx context.Context, userID string, day time.Time) (*domain.CheckIn, error) {
	var c domain.CheckIn
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, gym_id, created_at, validated_at
		FROM check_ins
		WHERE user_id = $1
		  AND (created_at AT TIME ZONE 'UTC')::date = $2::date
	`, userID, day.UTC().Format("2006-01-02")).
		Scan(&c.ID, &c.UserID, &c.GymID, &c.CreatedAt, &c.ValidatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser returns one page of the user's check-ins, newest first, plus the
// total count.
func (r *CheckInRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.CheckIn, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM check_ins WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, user_id, gym_id, created_at, validated_at
		FROM check_ins
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var checkIns []domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.GymID, &c.CreatedAt, &c.ValidatedAt); err != nil {
			return nil, 0, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, total, rows.Err()
}

// CountByUser returns the user's lifetime check-in count.
func (r *CheckInRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM check_ins WHERE user_id = $1`, userID,
	).Scan(&n)
	return n, err
}

// SetValidated stamps validated_at. The WHERE clause keeps an already
// validated row untouched, so the timestamp is never overwritten.
func (r *CheckInRepo) SetValidated(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE check_ins SET validated_at = $2
		WHERE id = $1 AND validated_at IS NULL
	`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCheckInAlreadyValidated
	}
	return nil
}
