package notification

import (
	"context"

	"jobmarket/internal/feed"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
)

type Service interface {
	// Notify records a notification for the recipient, publishes it on
	// the change feed, and hands it to the push queue.
	Notify(ctx context.Context, recipientID int, notifType, message string) error
	List(ctx context.Context, accountID int, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, id, accountID int) error
	UnreadCount(ctx context.Context, accountID int) (int, error)
}

type service struct {
	repo   Repository
	broker *feed.Broker
	push   *PushDispatcher
}

func NewService(repo Repository, broker *feed.Broker, push *PushDispatcher) Service {
	return &service{repo: repo, broker: broker, push: push}
}

func (s *service) Notify(ctx context.Context, recipientID int, notifType, message string) error {
	n, err := s.repo.Create(ctx, recipientID, notifType, message)
	if err != nil {
		logger.Errorf("Failed to create notification for account %d: %v", recipientID, err)
		return err
	}

	metrics.RecordNotificationCreated()
	s.broker.Publish(feed.Event{Entity: feed.EntityNotification, Op: feed.OpInsert, Row: *n})

	if s.push != nil {
		if err := s.push.Enqueue(ctx, recipientID, notifType, message); err != nil {
			// The in-app notification is already committed; push is
			// best effort.
			logger.Errorf("Failed to enqueue push for account %d: %v", recipientID, err)
		}
	}

	return nil
}

func (s *service) List(ctx context.Context, accountID int, limit, offset int) ([]Notification, error) {
	return s.repo.ListByAccount(ctx, accountID, limit, offset)
}

func (s *service) MarkRead(ctx context.Context, id, accountID int) error {
	return s.repo.MarkRead(ctx, id, accountID)
}

func (s *service) UnreadCount(ctx context.Context, accountID int) (int, error) {
	return s.repo.UnreadCount(ctx, accountID)
}
