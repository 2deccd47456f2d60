package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jobmarket/internal/job"
	"jobmarket/internal/notification"

	"github.com/jmoiron/sqlx"
)

const messageColumns = `id, job_id, sender_id, content, message_type, image_url, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateMessage inserts the message and exactly one notification for
// the other participant in the same transaction, so a committed
// message always has its notification and a failed one has none.
func (r *repository) CreateMessage(ctx context.Context, jobID, senderID int, req SendMessageRequest) (*Message, *notification.Notification, error) {
	messageType := req.MessageType
	if messageType == "" {
		messageType = TypeText
	}
	if messageType == TypeText && strings.TrimSpace(req.Content) == "" {
		return nil, nil, job.ErrValidation
	}
	if messageType == TypeImage && req.ImageURL == "" {
		return nil, nil, job.ErrValidation
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var j struct {
		ClientID     int           `db:"client_id"`
		SpecialistID sql.NullInt64 `db:"specialist_id"`
	}
	err = tx.QueryRowxContext(ctx,
		`SELECT client_id, specialist_id FROM jobs WHERE id = $1`, jobID,
	).StructScan(&j)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, job.ErrNotFound
		}
		return nil, nil, err
	}

	// Chat opens once both sides exist.
	if !j.SpecialistID.Valid {
		return nil, nil, job.ErrInvalidState
	}

	specialistID := int(j.SpecialistID.Int64)
	var recipientID int
	switch senderID {
	case j.ClientID:
		recipientID = specialistID
	case specialistID:
		recipientID = j.ClientID
	default:
		return nil, nil, ErrUnauthorized
	}

	var m Message
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO messages (job_id, sender_id, content, message_type, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+messageColumns,
		jobID, senderID, req.Content, messageType, req.ImageURL,
	).StructScan(&m)
	if err != nil {
		return nil, nil, err
	}

	var senderName string
	if err := tx.GetContext(ctx, &senderName,
		`SELECT full_name FROM accounts WHERE id = $1`, senderID); err != nil {
		return nil, nil, err
	}

	var n notification.Notification
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO notifications (account_id, type, message)
		VALUES ($1, $2, $3)
		RETURNING id, account_id, type, message, is_read, created_at`,
		recipientID, "new_message", fmt.Sprintf("New message from %s in job chat", senderName),
	).StructScan(&n)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &m, &n, nil
}

func (r *repository) ListByJob(ctx context.Context, jobID, accountID int) ([]Message, error) {
	var j struct {
		ClientID     int           `db:"client_id"`
		SpecialistID sql.NullInt64 `db:"specialist_id"`
	}
	err := r.db.QueryRowxContext(ctx,
		`SELECT client_id, specialist_id FROM jobs WHERE id = $1`, jobID,
	).StructScan(&j)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrNotFound
		}
		return nil, err
	}

	isParticipant := accountID == j.ClientID ||
		(j.SpecialistID.Valid && accountID == int(j.SpecialistID.Int64))
	if !isParticipant {
		return nil, ErrUnauthorized
	}

	query := `SELECT ` + messageColumns + `
		FROM messages
		WHERE job_id = $1
		ORDER BY created_at ASC`

	var messages []Message
	err = r.db.SelectContext(ctx, &messages, query, jobID)
	if err != nil {
		return nil, err
	}

	return messages, nil
}
