// Package backend is the typed client for the escrow backend contract,
// the sole source of truth for a capsule's lifecycle. The decision layer
// only reads snapshots from it and hands it argument records the user has
// already confirmed; it never derives authoritative state locally.
package backend

import (
	"context"

	"github.com/capsulex/libcapsule-go/capsule"
)

// Service is the narrow contract the decision layer holds against the
// escrow backend. The argument records mirror the backend's public
// interface field-for-field and must not be reshaped.
type Service interface {
	// FetchSnapshot returns one consistent read of the capsule's state,
	// including assets and sale-deal payloads.
	FetchSnapshot(ctx context.Context) (*capsule.Snapshot, error)

	// SetSaleIntention configures the payout account for sale proceeds.
	SetSaleIntention(ctx context.Context, args SetSaleIntentionArgs) error

	// CancelSaleIntention clears the configured payout account.
	CancelSaleIntention(ctx context.Context) error

	// SetSaleOffer lists the capsule at a price.
	SetSaleOffer(ctx context.Context, args SetSaleOfferArgs) error

	// CancelSaleOffer delists the capsule.
	CancelSaleOffer(ctx context.Context) error

	// SetBuyerOffer places or raises the viewer's buy offer.
	SetBuyerOffer(ctx context.Context, args SetBuyerOfferArgs) error

	// CancelBuyerOffer withdraws the viewer's buy offer.
	CancelBuyerOffer(ctx context.Context) error

	// AcceptBuyerOffer is the owner accepting a named buyer's offer.
	AcceptBuyerOffer(ctx context.Context, args AcceptBuyerOfferArgs) error

	// AcceptSellerOffer is the buyer accepting the listed price.
	AcceptSellerOffer(ctx context.Context, args AcceptSellerOfferArgs) error

	// StartRelease begins returning the capsule to its owner's control.
	StartRelease(ctx context.Context) error

	// CancelSaleDeal aborts the in-progress sale deal.
	CancelSaleDeal(ctx context.Context) error
}

// SetSaleIntentionArgs configures where sale proceeds are paid.
type SetSaleIntentionArgs struct {
	Receiver capsule.Account `json:"receiver"`
}

// SetSaleOfferArgs lists the capsule for sale.
type SetSaleOfferArgs struct {
	Price           uint64 `json:"price"` // atomic units
	ExpiresAtMillis int64  `json:"expires_at_millis"`
}

// SetBuyerOfferArgs places a buy offer.
type SetBuyerOfferArgs struct {
	Amount uint64 `json:"amount"` // atomic units
}

// AcceptBuyerOfferArgs accepts the named buyer's standing offer. The
// amount pins the offer the owner saw; the backend rejects the call if a
// different amount is now current.
type AcceptBuyerOfferArgs struct {
	Buyer  capsule.Account `json:"buyer"`
	Amount uint64          `json:"amount"` // atomic units
}

// AcceptSellerOfferArgs accepts the listed price as a buyer. The price
// pins the listing the buyer saw.
type AcceptSellerOfferArgs struct {
	Price uint64 `json:"price"` // atomic units
}
