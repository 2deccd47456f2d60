package wallet

import "context"

type Repository interface {
	GetBalance(ctx context.Context, accountID int) (int64, error)
	SumTransactions(ctx context.Context, accountID int) (int64, error)
	Credit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error)
	Debit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error)
	DebitStrict(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error)
	ListTransactions(ctx context.Context, accountID int, limit, offset int) ([]Transaction, error)
	CreateTopUp(ctx context.Context, accountID int, amount int64, method string) (*Settlement, error)
	SettleTopUp(ctx context.Context, settlementID string) (*Settlement, bool, error)
	Payout(ctx context.Context, specialistID, platformAccountID int, price int64, description string) error
}
