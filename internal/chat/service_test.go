package chat

import (
	"context"
	"testing"
	"time"

	"jobmarket/internal/feed"
	"jobmarket/internal/logger"
	"jobmarket/internal/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init()
}

type MockChatRepo struct{ mock.Mock }

func (m *MockChatRepo) CreateMessage(ctx context.Context, jobID, senderID int, req SendMessageRequest) (*Message, *notification.Notification, error) {
	args := m.Called(ctx, jobID, senderID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*Message), args.Get(1).(*notification.Notification), args.Error(2)
}

func (m *MockChatRepo) ListByJob(ctx context.Context, jobID, accountID int) ([]Message, error) {
	args := m.Called(ctx, jobID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}

func TestSend_PublishesMessageAndNotificationEvents(t *testing.T) {
	repo := new(MockChatRepo)
	broker := feed.NewBroker()
	svc := NewService(repo, broker, nil)
	ctx := context.Background()

	jobSub := broker.Subscribe(feed.And(feed.FilterEntity(feed.EntityMessage), feed.FilterJob(1)))
	defer jobSub.Close()
	recipientSub := broker.Subscribe(feed.FilterRecipient(20))
	defer recipientSub.Close()

	req := SendMessageRequest{Content: "Are you on the way?"}
	repo.On("CreateMessage", ctx, 1, 10, req).Return(
		&Message{ID: 1, JobID: 1, SenderID: 10, Content: "Are you on the way?", MessageType: TypeText},
		&notification.Notification{ID: 7, AccountID: 20, Type: "new_message", Message: "New message from Client One in job chat"},
		nil,
	)

	m, err := svc.Send(ctx, 1, 10, req)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)

	select {
	case event := <-jobSub.C:
		sent, ok := event.Row.(Message)
		require.True(t, ok)
		assert.Equal(t, "Are you on the way?", sent.Content)
	case <-time.After(time.Second):
		t.Fatal("expected a message feed event")
	}

	select {
	case event := <-recipientSub.C:
		n, ok := event.Row.(notification.Notification)
		require.True(t, ok)
		assert.Equal(t, 20, n.AccountID)
	case <-time.After(time.Second):
		t.Fatal("expected a notification feed event")
	}
}

func TestSend_RepositoryErrorPublishesNothing(t *testing.T) {
	repo := new(MockChatRepo)
	broker := feed.NewBroker()
	svc := NewService(repo, broker, nil)
	ctx := context.Background()

	sub := broker.Subscribe(feed.FilterEntity(feed.EntityMessage))
	defer sub.Close()

	req := SendMessageRequest{Content: "hi"}
	repo.On("CreateMessage", ctx, 1, 99, req).Return(nil, nil, ErrUnauthorized)

	_, err := svc.Send(ctx, 1, 99, req)
	assert.ErrorIs(t, err, ErrUnauthorized)

	select {
	case <-sub.C:
		t.Fatal("no event should be published for a rejected send")
	case <-time.After(50 * time.Millisecond):
	}
}
