// Package ledger is the client for the value-transfer ledger: fee and
// balance queries, transaction history, and the approve/transfer argument
// records the decision layer hands off once a user confirms an action.
//
// The decision layer itself never moves funds. Approve and Transfer exist
// on the interface so action payloads have a concrete, typed hand-off
// target; executing them is the presentation layer's concern.
package ledger

import (
	"context"

	"github.com/capsulex/libcapsule-go/capsule"
)

// Service is the narrow contract against the value-transfer ledger.
type Service interface {
	// TransferFee returns the ledger's flat per-transfer fee in atomic
	// units.
	TransferFee(ctx context.Context) (uint64, error)

	// Balance returns the account's spendable balance in atomic units.
	Balance(ctx context.Context, account capsule.Account) (uint64, error)

	// History returns the account's transactions, newest first.
	History(ctx context.Context, account capsule.Account) ([]Transaction, error)

	// Approve authorizes a spender to move up to the given amount from
	// the caller's account until the expiry.
	Approve(ctx context.Context, args ApproveArgs) error

	// Transfer moves funds between accounts.
	Transfer(ctx context.Context, args TransferArgs) error
}

// ApproveArgs authorizes a spender account. The fields are handed to the
// ledger unchanged from the action payload that produced them.
type ApproveArgs struct {
	Spender         capsule.Account `json:"spender"`
	Amount          uint64          `json:"amount"` // atomic units
	ExpiresAtMillis int64           `json:"expires_at_millis"`
}

// TransferArgs moves funds to a receiver.
type TransferArgs struct {
	To     capsule.Account `json:"to"`
	Amount uint64          `json:"amount"` // atomic units
}

// Transaction is one ledger history entry.
type Transaction struct {
	ID              uint64          `json:"id"`
	From            capsule.Account `json:"from"`
	To              capsule.Account `json:"to"`
	Amount          uint64          `json:"amount"` // atomic units
	Fee             uint64          `json:"fee"`    // atomic units
	TimestampMillis int64           `json:"timestamp_millis"`
}
