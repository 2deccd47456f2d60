package reputation

import (
	"context"

	"jobmarket/internal/account"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
)

type Service interface {
	SubmitReview(ctx context.Context, jobID, clientID int, req SubmitReviewRequest) (*Review, error)
	ListReviews(ctx context.Context, specialistID int) ([]Review, error)
	SummaryFor(ctx context.Context, specialistID int) (*Summary, error)
}

type service struct {
	repo     Repository
	accounts account.Repository
}

func NewService(repo Repository, accounts account.Repository) Service {
	return &service{repo: repo, accounts: accounts}
}

func (s *service) SubmitReview(ctx context.Context, jobID, clientID int, req SubmitReviewRequest) (*Review, error) {
	review, err := s.repo.SubmitReview(ctx, jobID, clientID, req)
	if err != nil {
		return nil, err
	}

	metrics.RecordReviewSubmitted()
	logger.Infof("Client %d reviewed job %d with rating %d", clientID, jobID, review.Rating)
	return review, nil
}

func (s *service) ListReviews(ctx context.Context, specialistID int) ([]Review, error) {
	return s.repo.ListBySpecialist(ctx, specialistID)
}

// SummaryFor builds the public reputation card. A specialist with no
// reviews yet shows a 5.0 average, matching the storefront convention
// of starting everyone at full marks.
func (s *service) SummaryFor(ctx context.Context, specialistID int) (*Summary, error) {
	a, err := s.accounts.FindByID(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if a.Role != account.RoleSpecialist {
		return nil, account.ErrNotSpecialist
	}

	avg, count, err := s.repo.ReviewStats(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		avg = 5.0
	}

	return &Summary{
		SpecialistID:  specialistID,
		JobsCompleted: a.JobsCompleted,
		Rank:          RankFor(a.JobsCompleted),
		ReviewAverage: avg,
		ReviewCount:   count,
	}, nil
}
