package notification

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const notificationColumns = `id, account_id, type, message, is_read, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, accountID int, notifType, message string) (*Notification, error) {
	query := `
		INSERT INTO notifications (account_id, type, message)
		VALUES ($1, $2, $3)
		RETURNING ` + notificationColumns

	var n Notification
	err := r.db.GetContext(ctx, &n, query, accountID, notifType, message)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *repository) ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `SELECT ` + notificationColumns + `
		FROM notifications
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var notifications []Notification
	err := r.db.SelectContext(ctx, &notifications, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkRead is idempotent: marking an already-read notification
// affects no row and succeeds. Unknown ids are NotFound.
func (r *repository) MarkRead(ctx context.Context, id, accountID int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND account_id = $2 AND is_read = FALSE`,
		id, accountID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	err = r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND account_id = $2)`, id, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !exists {
		return ErrNotFound
	}

	return nil
}

func (r *repository) UnreadCount(ctx context.Context, accountID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE account_id = $1 AND is_read = FALSE`, accountID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
