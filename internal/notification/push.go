package notification

import (
	"context"
	"encoding/json"
	"time"

	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Transport delivers a push notification to a device. The real
// delivery happens outside this service; the shipped transport only
// logs.
type Transport interface {
	Send(ctx context.Context, recipientID int, title, body string) error
}

// LogTransport is the default transport when no push provider is
// configured.
type LogTransport struct{}

func (LogTransport) Send(_ context.Context, recipientID int, title, body string) error {
	logger.Infof("Push to account %d: %s - %s", recipientID, title, body)
	return nil
}

type PushJob struct {
	RecipientID int       `json:"recipient_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Tries       int       `json:"tries"`
	Created     time.Time `json:"created"`
}

// PushDispatcher queues push jobs on a redis list and drains them
// with a blocking-pop worker loop.
type PushDispatcher struct {
	redis     *redis.Client
	transport Transport
	queueKey  string
}

func NewPushDispatcher(client *redis.Client, transport Transport, queueKey string) *PushDispatcher {
	return &PushDispatcher{redis: client, transport: transport, queueKey: queueKey}
}

func (d *PushDispatcher) Enqueue(ctx context.Context, recipientID int, title, body string) error {
	job := PushJob{
		RecipientID: recipientID,
		Title:       title,
		Body:        body,
		Tries:       0,
		Created:     time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := d.redis.LPush(ctx, d.queueKey, string(data)).Err(); err != nil {
		logger.Errorf("Failed to queue push for account %d: %v", recipientID, err)
		return err
	}

	logger.Infof("Push queued for account %d: %s", recipientID, title)
	return nil
}

func (d *PushDispatcher) Start(ctx context.Context) {
	logger.Info("Push dispatcher started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Push dispatcher stopped")
			return
		default:
			d.processNext(ctx)
		}
	}
}

func (d *PushDispatcher) processNext(ctx context.Context) {
	result, err := d.redis.BRPop(ctx, 2*time.Second, d.queueKey).Result()
	if err != nil {
		return
	}

	var job PushJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad push job data: %v", err)
		return
	}

	job.Tries++
	if err := d.transport.Send(ctx, job.RecipientID, job.Title, job.Body); err != nil {
		logger.Errorf("Failed to push to account %d: %v", job.RecipientID, err)

		if job.Tries < 3 {
			data, _ := json.Marshal(job)
			d.redis.LPush(context.Background(), d.queueKey, string(data))
			logger.Infof("Retrying push to account %d (attempt %d)", job.RecipientID, job.Tries+1)
		} else {
			d.saveFailed(job, err)
		}
		return
	}

	logger.Debugf("Push delivered to account %d", job.RecipientID)
}

func (d *PushDispatcher) saveFailed(job PushJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	d.redis.LPush(context.Background(), d.queueKey+":failed", string(data))
	logger.Errorf("Push to account %d moved to failed queue after %d attempts", job.RecipientID, job.Tries)
}

// QueueLength reports the pending depth and refreshes the gauge.
func (d *PushDispatcher) QueueLength(ctx context.Context) int64 {
	length, _ := d.redis.LLen(ctx, d.queueKey).Result()
	metrics.SetPushQueueLength(float64(length))
	return length
}
