package notification

import "context"

type Repository interface {
	Create(ctx context.Context, accountID int, notifType, message string) (*Notification, error)
	ListByAccount(ctx context.Context, accountID int, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, id, accountID int) error
	UnreadCount(ctx context.Context, accountID int) (int, error)
}
