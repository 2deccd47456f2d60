package wallet

import (
	"context"

	"jobmarket/internal/logger"
	"jobmarket/internal/metrics"
)

type Service interface {
	GetBalance(ctx context.Context, accountID int) (int64, error)
	Credit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error)
	Debit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error)
	ListTransactions(ctx context.Context, accountID int, limit, offset int) ([]Transaction, error)
	TopUp(ctx context.Context, accountID int, amount int64, method string) (*Settlement, error)
	SettleTopUp(ctx context.Context, settlementID string) (*Settlement, error)
	PayoutForJob(ctx context.Context, specialistID int, price int64, jobDescription string) error
}

type service struct {
	repo              Repository
	platformAccountID int
}

func NewService(repo Repository, platformAccountID int) Service {
	return &service{
		repo:              repo,
		platformAccountID: platformAccountID,
	}
}

func (s *service) GetBalance(ctx context.Context, accountID int) (int64, error) {
	return s.repo.GetBalance(ctx, accountID)
}

func (s *service) Credit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error) {
	txn, err := s.repo.Credit(ctx, accountID, amount, description)
	if err != nil {
		return nil, err
	}
	metrics.RecordWalletTransaction("credit")
	return txn, nil
}

func (s *service) Debit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error) {
	txn, err := s.repo.Debit(ctx, accountID, amount, description)
	if err != nil {
		return nil, err
	}
	metrics.RecordWalletTransaction("debit")
	return txn, nil
}

func (s *service) ListTransactions(ctx context.Context, accountID int, limit, offset int) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, accountID, limit, offset)
}

func (s *service) TopUp(ctx context.Context, accountID int, amount int64, method string) (*Settlement, error) {
	settlement, err := s.repo.CreateTopUp(ctx, accountID, amount, method)
	if err != nil {
		return nil, err
	}

	logger.Infof("Top-up requested: settlement=%s account=%d amount=%d method=%s",
		settlement.ID, accountID, amount, method)
	return settlement, nil
}

func (s *service) SettleTopUp(ctx context.Context, settlementID string) (*Settlement, error) {
	settlement, credited, err := s.repo.SettleTopUp(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	if credited {
		metrics.RecordWalletTransaction("credit")
		metrics.RecordSettlement("settled")
		logger.Infof("Settlement confirmed: settlement=%s account=%d amount=%d",
			settlement.ID, settlement.AccountID, settlement.Amount)
	} else {
		metrics.RecordSettlement("replay")
		logger.Infof("Settlement replay ignored: settlement=%s", settlement.ID)
	}

	return settlement, nil
}

func (s *service) PayoutForJob(ctx context.Context, specialistID int, price int64, jobDescription string) error {
	if err := s.repo.Payout(ctx, specialistID, s.platformAccountID, price, jobDescription); err != nil {
		return err
	}

	metrics.RecordWalletTransaction("payout")
	metrics.RecordWalletTransaction("commission")
	return nil
}
