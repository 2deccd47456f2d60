package reputation

import (
	"errors"
	"time"
)

var (
	ErrAlreadyReviewed = errors.New("job already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Tier is the display rank earned from completed jobs.
type Tier string

const (
	TierNew        Tier = "NEW"
	TierPro        Tier = "PRO"
	TierElite      Tier = "ELITE"
	TierSpecialist Tier = "SPECIALIST"
)

// RankFor maps a completed-job count onto its rank tier.
func RankFor(completed int) Tier {
	switch {
	case completed >= 50:
		return TierSpecialist
	case completed >= 30:
		return TierElite
	case completed >= 10:
		return TierPro
	default:
		return TierNew
	}
}

type Review struct {
	ID           int       `db:"id" json:"id"`
	JobID        int       `db:"job_id" json:"job_id"`
	SpecialistID int       `db:"specialist_id" json:"specialist_id"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      string    `db:"comment" json:"comment"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Summary is the public reputation card for a specialist.
type Summary struct {
	SpecialistID  int     `json:"specialist_id"`
	JobsCompleted int     `json:"jobs_completed"`
	Rank          Tier    `json:"rank"`
	ReviewAverage float64 `json:"review_average"`
	ReviewCount   int     `json:"review_count"`
}
