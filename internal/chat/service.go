package chat

import (
	"context"

	"jobmarket/internal/feed"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
	"jobmarket/internal/notification"
)

type Service interface {
	Send(ctx context.Context, jobID, senderID int, req SendMessageRequest) (*Message, error)
	ListForJob(ctx context.Context, jobID, accountID int) ([]Message, error)
}

type service struct {
	repo   Repository
	broker *feed.Broker
	push   *notification.PushDispatcher
}

func NewService(repo Repository, broker *feed.Broker, push *notification.PushDispatcher) Service {
	return &service{repo: repo, broker: broker, push: push}
}

func (s *service) Send(ctx context.Context, jobID, senderID int, req SendMessageRequest) (*Message, error) {
	m, n, err := s.repo.CreateMessage(ctx, jobID, senderID, req)
	if err != nil {
		return nil, err
	}

	metrics.RecordNotificationCreated()
	s.broker.Publish(feed.Event{Entity: feed.EntityMessage, Op: feed.OpInsert, Row: *m})
	s.broker.Publish(feed.Event{Entity: feed.EntityNotification, Op: feed.OpInsert, Row: *n})

	if s.push != nil {
		if err := s.push.Enqueue(ctx, n.AccountID, n.Type, n.Message); err != nil {
			logger.Errorf("Failed to enqueue push for message %d: %v", m.ID, err)
		}
	}

	return m, nil
}

func (s *service) ListForJob(ctx context.Context, jobID, accountID int) ([]Message, error) {
	return s.repo.ListByJob(ctx, jobID, accountID)
}
