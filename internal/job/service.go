package job

import (
	"context"
	"fmt"
	"strings"

	"jobmarket/internal/account"
	"jobmarket/internal/feed"
	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
	"jobmarket/internal/wallet"
)

// Notifier derives notifications from job lifecycle events. Delivery
// failures never roll back the state transition that triggered them.
type Notifier interface {
	Notify(ctx context.Context, recipientID int, notifType, message string) error
}

type Service interface {
	Create(ctx context.Context, clientID int, req CreateJobRequest) (*Job, error)
	GetByID(ctx context.Context, id int) (*Job, error)
	ListByClient(ctx context.Context, clientID int) ([]Job, error)
	ListBySpecialist(ctx context.Context, specialistID int) ([]Job, error)
	ListOpen(ctx context.Context, category string) ([]Job, error)
	Claim(ctx context.Context, jobID, specialistID int) (*Job, error)
	Complete(ctx context.Context, jobID, actorID int) (*Job, error)
}

type service struct {
	repo        Repository
	accountRepo account.Repository
	wallet      wallet.Service
	broker      *feed.Broker
	notifier    Notifier
}

func NewService(repo Repository, accountRepo account.Repository, walletService wallet.Service, broker *feed.Broker, notifier Notifier) Service {
	return &service{
		repo:        repo,
		accountRepo: accountRepo,
		wallet:      walletService,
		broker:      broker,
		notifier:    notifier,
	}
}

func (s *service) Create(ctx context.Context, clientID int, req CreateJobRequest) (*Job, error) {
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrValidation
	}
	if req.PriceEstimate <= 0 {
		return nil, ErrValidation
	}

	if req.SpecialistID != nil {
		specialist, err := s.accountRepo.FindByID(ctx, *req.SpecialistID)
		if err != nil {
			return nil, ErrValidation
		}
		if specialist.Role != account.RoleSpecialist {
			return nil, ErrValidation
		}
	}

	j, err := s.repo.Create(ctx, clientID, req)
	if err != nil {
		return nil, err
	}

	metrics.RecordJobCreated(j.Category)
	s.broker.Publish(feed.Event{Entity: feed.EntityJob, Op: feed.OpInsert, Row: *j})

	if j.SpecialistID != nil {
		s.notifyJobEvent(ctx, *j.SpecialistID, "job_booked",
			fmt.Sprintf("You were booked directly for a %s job", j.Category))
	}

	return j, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByClient(ctx context.Context, clientID int) ([]Job, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) ListBySpecialist(ctx context.Context, specialistID int) ([]Job, error) {
	return s.repo.ListBySpecialist(ctx, specialistID)
}

func (s *service) ListOpen(ctx context.Context, category string) ([]Job, error) {
	return s.repo.ListOpen(ctx, category)
}

// Claim applies the "keep positive to accept jobs" gate, then hands
// the race to the conditional update in the repository.
func (s *service) Claim(ctx context.Context, jobID, specialistID int) (*Job, error) {
	balance, err := s.wallet.GetBalance(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, ErrIneligibleActor
	}

	j, err := s.repo.Claim(ctx, jobID, specialistID)
	if err != nil {
		return nil, err
	}

	s.broker.Publish(feed.Event{Entity: feed.EntityJob, Op: feed.OpUpdate, Row: *j})

	specialistName := s.displayName(ctx, specialistID)
	s.notifyJobEvent(ctx, j.ClientID, "job_accepted",
		fmt.Sprintf("%s accepted your %s job", specialistName, j.Category))

	return j, nil
}

// Complete transitions the job and then records the payout: the
// specialist's net credit and the platform's commission as separate
// ledger entries. A payout failure is surfaced, the completed state
// stands.
func (s *service) Complete(ctx context.Context, jobID, actorID int) (*Job, error) {
	j, err := s.repo.Complete(ctx, jobID, actorID)
	if err != nil {
		return nil, err
	}

	metrics.RecordJobCompleted()
	s.broker.Publish(feed.Event{Entity: feed.EntityJob, Op: feed.OpUpdate, Row: *j})

	if err := s.wallet.PayoutForJob(ctx, actorID, j.PriceEstimate, fmt.Sprintf("job #%d completed", j.ID)); err != nil {
		logger.Errorf("Payout failed for job %d: %v", j.ID, err)
		return j, err
	}

	specialistName := s.displayName(ctx, actorID)
	s.notifyJobEvent(ctx, j.ClientID, "job_completed",
		fmt.Sprintf("%s marked your %s job as completed", specialistName, j.Category))

	return j, nil
}

func (s *service) displayName(ctx context.Context, accountID int) string {
	a, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil || a.FullName == "" {
		return "a specialist"
	}
	return a.FullName
}

func (s *service) notifyJobEvent(ctx context.Context, recipientID int, notifType, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, recipientID, notifType, message); err != nil {
		logger.Errorf("Failed to notify account %d about %s: %v", recipientID, notifType, err)
	}
}
