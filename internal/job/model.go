package job

import "time"

// Lifecycle states. A job is open only at creation; no transition
// returns to it.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Job struct {
	ID                int       `db:"id" json:"id"`
	ClientID          int       `db:"client_id" json:"client_id"`
	SpecialistID      *int      `db:"specialist_id" json:"specialist_id,omitempty"`
	Category          string    `db:"category" json:"category"`
	Address           string    `db:"address" json:"address"`
	Latitude          float64   `db:"latitude" json:"latitude"`
	Longitude         float64   `db:"longitude" json:"longitude"`
	Description       string    `db:"description" json:"description"`
	PriceEstimate     int64     `db:"price_estimate" json:"price_estimate"`
	Status            string    `db:"status" json:"status"`
	ClientHasReviewed bool      `db:"client_has_reviewed" json:"client_has_reviewed"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// JobScope lets the change feed route job events to per-job
// subscriptions.
func (j Job) JobScope() int { return j.ID }

type CreateJobRequest struct {
	Category      string  `json:"category" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Description   string  `json:"description"`
	PriceEstimate int64   `json:"price_estimate" binding:"required,gt=0"`

	// SpecialistID makes this a direct booking: the job starts
	// in_progress with the chosen specialist already assigned.
	SpecialistID *int `json:"specialist_id,omitempty"`
}
