package account

import (
	"context"
	"database/sql"
	"errors"

	"jobmarket/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrAccountNotFound = errors.New("account not found")

const accountColumns = `id, email, password_hash, full_name, role, verification_status,
	id_card_front_url, id_card_back_url, bio, skills, base_price, balance, jobs_completed, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, passwordHash, fullName, role string) (*Account, error) {
	query := `
		INSERT INTO accounts (email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + accountColumns

	var a Account
	err := r.db.GetContext(ctx, &a, query, email, passwordHash, fullName, role)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	var a Account
	err := r.db.GetContext(ctx, &a, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	var a Account
	err := r.db.GetContext(ctx, &a, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`, email)
}

func (r *repository) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Account, error) {
	query := `
		UPDATE accounts
		SET full_name = COALESCE(NULLIF($2, ''), full_name),
		    bio = $3,
		    skills = $4,
		    base_price = CASE WHEN $5 > 0 THEN $5 ELSE base_price END
		WHERE id = $1
		RETURNING ` + accountColumns

	var a Account
	err := r.db.GetContext(ctx, &a, query, id, req.FullName, req.Bio, req.Skills, req.BasePrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) SubmitVerification(ctx context.Context, id int, frontURL, backURL string) error {
	query := `
		UPDATE accounts
		SET verification_status = 'pending', id_card_front_url = $2, id_card_back_url = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, frontURL, backURL)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *repository) SetVerificationStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE accounts SET verification_status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *repository) PromoteToAdmin(ctx context.Context, id int) error {
	query := `UPDATE accounts SET role = 'admin' WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *repository) ListPendingVerification(ctx context.Context) ([]Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE verification_status = 'pending'
		ORDER BY created_at ASC`

	var accounts []Account
	err := r.db.SelectContext(ctx, &accounts, query)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *repository) ListSpecialists(ctx context.Context) ([]Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE role = 'specialist'
		ORDER BY jobs_completed DESC, created_at ASC`

	var accounts []Account
	err := r.db.SelectContext(ctx, &accounts, query)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
