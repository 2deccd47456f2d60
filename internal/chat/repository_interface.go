package chat

import (
	"context"

	"jobmarket/internal/notification"
)

type Repository interface {
	// CreateMessage stores the message and the other participant's
	// notification in one transaction.
	CreateMessage(ctx context.Context, jobID, senderID int, req SendMessageRequest) (*Message, *notification.Notification, error)
	ListByJob(ctx context.Context, jobID, accountID int) ([]Message, error)
}
