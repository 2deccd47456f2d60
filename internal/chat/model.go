package chat

import (
	"errors"
	"time"
)

var ErrUnauthorized = errors.New("sender is not a participant of this job")

const (
	TypeText  = "text"
	TypeImage = "image"
)

type Message struct {
	ID          int       `db:"id" json:"id"`
	JobID       int       `db:"job_id" json:"job_id"`
	SenderID    int       `db:"sender_id" json:"sender_id"`
	Content     string    `db:"content" json:"content"`
	MessageType string    `db:"message_type" json:"message_type"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// JobScope lets message rows ride the change feed filtered by job.
func (m Message) JobScope() int {
	return m.JobID
}

type SendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type" binding:"omitempty,oneof=text image"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}
