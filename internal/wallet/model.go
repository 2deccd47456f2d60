package wallet

import "time"

// CommissionPercent is the platform's cut of a completed job's price
// estimate, taken from the specialist's payout.
const CommissionPercent = 10

// CommissionSplit returns the specialist's net payout and the
// platform's commission for a given price estimate. The two amounts
// always sum to the price.
func CommissionSplit(price int64) (net, commission int64) {
	commission = price * CommissionPercent / 100
	net = price - commission
	return net, commission
}

const (
	SettlementPending = "pending"
	SettlementSettled = "settled"
)

// Transaction is one append-only ledger entry. The sum of an
// account's transactions always equals its current balance.
type Transaction struct {
	ID           int       `db:"id" json:"id"`
	AccountID    int       `db:"account_id" json:"account_id"`
	Amount       int64     `db:"amount" json:"amount"`
	Description  string    `db:"description" json:"description"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Settlement is a pending out-of-band top-up request. It is credited
// to the wallet exactly once, when the external payment confirmation
// arrives. Unsettled rows are never auto-voided.
type Settlement struct {
	ID        string     `db:"id" json:"id"`
	AccountID int        `db:"account_id" json:"account_id"`
	Amount    int64      `db:"amount" json:"amount"`
	Method    string     `db:"method" json:"method"`
	Status    string     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	SettledAt *time.Time `db:"settled_at" json:"settled_at,omitempty"`
}

type TopUpRequest struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Method string `json:"method" binding:"required"`
}
