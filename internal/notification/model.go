package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

type Notification struct {
	ID        int       `db:"id" json:"id"`
	AccountID int       `db:"account_id" json:"account_id"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RecipientScope lets notification rows ride the change feed filtered
// by recipient.
func (n Notification) RecipientScope() int {
	return n.AccountID
}
