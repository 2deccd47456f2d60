package reputation

import "context"

type Repository interface {
	SubmitReview(ctx context.Context, jobID, clientID int, req SubmitReviewRequest) (*Review, error)
	ListBySpecialist(ctx context.Context, specialistID int) ([]Review, error)
	ReviewStats(ctx context.Context, specialistID int) (avg float64, count int, err error)
}
