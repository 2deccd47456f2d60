package reputation

import (
	"context"
	"database/sql"
	"errors"

	"jobmarket/internal/job"

	"github.com/jmoiron/sqlx"
)

const reviewColumns = `id, job_id, specialist_id, rating, comment, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// SubmitReview inserts the review and flips client_has_reviewed in
// one transaction. The flag flip is a conditional update, so only one
// review can ever land per job no matter how the clicks race.
func (r *repository) SubmitReview(ctx context.Context, jobID, clientID int, req SubmitReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j struct {
		ClientID     int           `db:"client_id"`
		SpecialistID sql.NullInt64 `db:"specialist_id"`
		Status       string        `db:"status"`
	}
	err = tx.QueryRowxContext(ctx,
		`SELECT client_id, specialist_id, status FROM jobs WHERE id = $1 FOR UPDATE`, jobID,
	).StructScan(&j)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrNotFound
		}
		return nil, err
	}

	if j.ClientID != clientID {
		return nil, job.ErrUnauthorized
	}
	if j.Status != job.StatusCompleted || !j.SpecialistID.Valid {
		return nil, job.ErrInvalidState
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE jobs SET client_has_reviewed = TRUE WHERE id = $1 AND client_has_reviewed = FALSE`, jobID)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAlreadyReviewed
	}

	var review Review
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO reviews (job_id, specialist_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reviewColumns,
		jobID, j.SpecialistID.Int64, req.Rating, req.Comment,
	).StructScan(&review)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *repository) ListBySpecialist(ctx context.Context, specialistID int) ([]Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE specialist_id = $1
		ORDER BY created_at DESC`

	var reviews []Review
	err := r.db.SelectContext(ctx, &reviews, query, specialistID)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) ReviewStats(ctx context.Context, specialistID int) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE specialist_id = $1`

	var avg float64
	var count int
	err := r.db.QueryRowxContext(ctx, query, specialistID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}

	return avg, count, nil
}
