package job

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound   = errors.New("job not found")
	ErrValidation = errors.New("invalid job details")

	// ErrInvalidState covers any transition attempted against the
	// wrong lifecycle state, including the lost side of a claim race.
	ErrInvalidState = errors.New("operation not allowed in current job state")

	ErrUnauthorized    = errors.New("actor is not a participant of this job")
	ErrIneligibleActor = errors.New("specialist is not eligible to claim jobs")
)

const jobColumns = `id, client_id, specialist_id, category, address, latitude, longitude,
	description, price_estimate, status, client_has_reviewed, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, clientID int, req CreateJobRequest) (*Job, error) {
	status := StatusOpen
	if req.SpecialistID != nil {
		status = StatusInProgress
	}

	query := `
		INSERT INTO jobs (client_id, specialist_id, category, address, latitude, longitude,
			description, price_estimate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + jobColumns

	var j Job
	err := r.db.GetContext(ctx, &j, query,
		clientID, req.SpecialistID, req.Category, req.Address, req.Latitude, req.Longitude,
		req.Description, req.PriceEstimate, status)
	if err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var j Job
	err := r.db.GetContext(ctx, &j, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &j, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE client_id = $1
		ORDER BY created_at DESC`

	var jobs []Job
	err := r.db.SelectContext(ctx, &jobs, query, clientID)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *repository) ListBySpecialist(ctx context.Context, specialistID int) ([]Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE specialist_id = $1
		ORDER BY created_at DESC`

	var jobs []Job
	err := r.db.SelectContext(ctx, &jobs, query, specialistID)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *repository) ListOpen(ctx context.Context, category string) ([]Job, error) {
	query := `SELECT ` + jobColumns + `
		FROM jobs
		WHERE status = 'open' AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC`

	var jobs []Job
	err := r.db.SelectContext(ctx, &jobs, query, category)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// Claim is the conditional update that serializes concurrent claims
// per job row: the transition to in_progress happens only if the job
// is still open with no specialist assigned. Exactly one concurrent
// caller gets the row back; everyone else loses the race.
func (r *repository) Claim(ctx context.Context, jobID, specialistID int) (*Job, error) {
	query := `
		UPDATE jobs
		SET status = 'in_progress', specialist_id = $2
		WHERE id = $1 AND status = 'open' AND specialist_id IS NULL
		RETURNING ` + jobColumns

	var j Job
	err := r.db.GetContext(ctx, &j, query, jobID, specialistID)
	if err == nil {
		return &j, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// No row transitioned: absent job or a lost race.
	if _, getErr := r.GetByID(ctx, jobID); getErr != nil {
		return nil, getErr
	}
	return nil, ErrInvalidState
}

// Complete transitions in_progress -> completed and increments the
// specialist's completion count in the same transaction. The row lock
// taken by the read keeps concurrent completes totally ordered.
func (r *repository) Complete(ctx context.Context, jobID, specialistID int) (*Job, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var j Job
	err = tx.QueryRowxContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, jobID,
	).StructScan(&j)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if j.Status != StatusInProgress {
		return nil, ErrInvalidState
	}
	if j.SpecialistID == nil || *j.SpecialistID != specialistID {
		return nil, ErrUnauthorized
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE jobs SET status = 'completed' WHERE id = $1`, jobID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE accounts SET jobs_completed = jobs_completed + 1 WHERE id = $1`, specialistID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	j.Status = StatusCompleted
	return &j, nil
}
