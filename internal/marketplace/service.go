package marketplace

import (
	"context"
	"errors"

	"jobmarket/internal/job"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
)

// Service is the specialist-facing side of the board: browse open
// jobs and race to accept one.
type Service interface {
	ListOpenJobs(ctx context.Context, category string) ([]job.Job, error)
	AcceptJob(ctx context.Context, jobID, specialistID int) (*job.Job, error)
}

type service struct {
	jobs job.Service
}

func NewService(jobs job.Service) Service {
	return &service{jobs: jobs}
}

func (s *service) ListOpenJobs(ctx context.Context, category string) ([]job.Job, error) {
	return s.jobs.ListOpen(ctx, category)
}

// AcceptJob records the attempt outcome and otherwise passes the
// job-side errors through unchanged so callers can distinguish a lost
// race from an ineligible specialist.
func (s *service) AcceptJob(ctx context.Context, jobID, specialistID int) (*job.Job, error) {
	j, err := s.jobs.Claim(ctx, jobID, specialistID)
	switch {
	case err == nil:
		metrics.RecordClaimAttempt("won")
		logger.Infof("Specialist %d accepted job %d", specialistID, jobID)
	case errors.Is(err, job.ErrInvalidState):
		metrics.RecordClaimAttempt("lost")
		logger.Infof("Specialist %d lost the race for job %d", specialistID, jobID)
	case errors.Is(err, job.ErrIneligibleActor):
		metrics.RecordClaimAttempt("ineligible")
	default:
		metrics.RecordClaimAttempt("error")
	}
	return j, err
}
