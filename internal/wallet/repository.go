package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrInvalidAmount      = errors.New("amount must be a positive integer")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrConflictRetryable marks transient write contention on the
	// per-account serialization point. It is the only error kind a
	// caller should retry automatically.
	ErrConflictRetryable = errors.New("transient write conflict, retry")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func wrapRetryable(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		if pqErr.Code == "40001" || pqErr.Code == "40P01" {
			return fmt.Errorf("%w: %v", ErrConflictRetryable, err)
		}
	}
	return err
}

func (r *repository) GetBalance(ctx context.Context, accountID int) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (r *repository) SumTransactions(ctx context.Context, accountID int) (int64, error) {
	var sum int64
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// applyTx locks the account row, moves the balance, and appends the
// ledger entry inside the caller's transaction. There is no window
// where balance and transaction log disagree.
func applyTx(ctx context.Context, tx *sqlx.Tx, accountID int, amount int64, description string, enforceNonNegative bool) (*Transaction, error) {
	var balance int64
	err := tx.QueryRowxContext(ctx,
		`SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, accountID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	newBalance := balance + amount
	if enforceNonNegative && newBalance < 0 {
		return nil, ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1 WHERE id = $2`, newBalance, accountID)
	if err != nil {
		return nil, err
	}

	var txn Transaction
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO transactions (account_id, amount, description, balance_after)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, account_id, amount, description, balance_after, created_at`,
		accountID, amount, description, newBalance,
	).StructScan(&txn)
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

func (r *repository) addTransaction(ctx context.Context, accountID int, amount int64, description string, enforceNonNegative bool) (*Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	txn, err := applyTx(ctx, tx, accountID, amount, description, enforceNonNegative)
	if err != nil {
		return nil, wrapRetryable(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapRetryable(err)
	}

	return txn, nil
}

func (r *repository) Credit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return r.addTransaction(ctx, accountID, amount, description, false)
}

// Debit may drive the balance negative. A negative balance is a soft
// block on accepting new jobs, not a hard reject of the debit itself.
func (r *repository) Debit(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return r.addTransaction(ctx, accountID, -amount, description, false)
}

// DebitStrict rejects with ErrInsufficientFunds where policy demands a
// non-negative balance.
func (r *repository) DebitStrict(ctx context.Context, accountID int, amount int64, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return r.addTransaction(ctx, accountID, -amount, description, true)
}

func (r *repository) ListTransactions(ctx context.Context, accountID int, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT id, account_id, amount, description, balance_after, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *repository) CreateTopUp(ctx context.Context, accountID int, amount int64, method string) (*Settlement, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var s Settlement
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO settlements (id, account_id, amount, method, status)
		 VALUES ($1, $2, $3, $4, 'pending')
		 RETURNING id, account_id, amount, method, status, created_at, settled_at`,
		uuid.NewString(), accountID, amount, method,
	).StructScan(&s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// SettleTopUp performs the credit for a confirmed top-up exactly once.
// The conditional update on status is the idempotence guard: a replay
// of an already-settled id is a no-op success, reported by the second
// return value.
func (r *repository) SettleTopUp(ctx context.Context, settlementID string) (*Settlement, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	var s Settlement
	err = tx.QueryRowxContext(ctx,
		`UPDATE settlements
		 SET status = 'settled', settled_at = NOW()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING id, account_id, amount, method, status, created_at, settled_at`,
		settlementID,
	).StructScan(&s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either unknown id or a replayed confirmation.
			var existing Settlement
			getErr := r.db.GetContext(ctx, &existing,
				`SELECT id, account_id, amount, method, status, created_at, settled_at
				 FROM settlements WHERE id = $1`, settlementID)
			if getErr != nil {
				if errors.Is(getErr, sql.ErrNoRows) {
					return nil, false, ErrSettlementNotFound
				}
				return nil, false, getErr
			}
			return &existing, false, nil
		}
		return nil, false, wrapRetryable(err)
	}

	if _, err := applyTx(ctx, tx, s.AccountID, s.Amount, "topup:"+s.Method, false); err != nil {
		return nil, false, wrapRetryable(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, wrapRetryable(err)
	}

	return &s, true, nil
}

// Payout records a completed job's money movement as two traceable
// ledger entries: the specialist's net credit and the platform's
// commission credit. Account rows are locked in id order so two
// concurrent payouts cannot deadlock.
func (r *repository) Payout(ctx context.Context, specialistID, platformAccountID int, price int64, description string) error {
	if price <= 0 {
		return ErrInvalidAmount
	}

	net, commission := CommissionSplit(price)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	first, second := specialistID, platformAccountID
	firstAmount, secondAmount := net, commission
	firstDesc := description + " (net payout)"
	secondDesc := description + " (commission)"
	if platformAccountID < specialistID {
		first, second = platformAccountID, specialistID
		firstAmount, secondAmount = commission, net
		firstDesc, secondDesc = secondDesc, firstDesc
	}

	if _, err := applyTx(ctx, tx, first, firstAmount, firstDesc, false); err != nil {
		return wrapRetryable(err)
	}
	if _, err := applyTx(ctx, tx, second, secondAmount, secondDesc, false); err != nil {
		return wrapRetryable(err)
	}

	if err := tx.Commit(); err != nil {
		return wrapRetryable(err)
	}

	return nil
}
