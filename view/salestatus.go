package view

import (
	"github.com/capsulex/libcapsule-go/capsule"
	"github.com/capsulex/libcapsule-go/gate"
)

// SaleStatusKind classifies the capsule's sale situation.
type SaleStatusKind int

const (
	// SaleNoData means the holder snapshot has not loaded, or the state
	// carries no sale information.
	SaleNoData SaleStatusKind = iota

	// SaleIntentionNotSet means the capsule is in Hold with no payout
	// account configured.
	SaleIntentionNotSet

	// SaleNotListed means a payout account is configured but no price is
	// set.
	SaleNotListed

	// SaleListed means a price is set and the deal is not yet accepted.
	SaleListed

	// SaleSold means an accepted deal or a completed-deal record was
	// observed.
	SaleSold
)

// String returns the status name.
func (k SaleStatusKind) String() string {
	switch k {
	case SaleIntentionNotSet:
		return "SaleIntentionNotSet"
	case SaleNotListed:
		return "NotListed"
	case SaleListed:
		return "Listed"
	case SaleSold:
		return "Sold"
	default:
		return "NoData"
	}
}

// SaleStatus is the derived sale situation shown alongside the page.
type SaleStatus struct {
	Kind SaleStatusKind

	// Price is set for Listed and Sold.
	Price uint64

	// ExpiresAtMillis and QuarantineEndMillis are set for Listed when
	// the listing carries them. The quarantine end is informational
	// only. It never gates an action; the backend enforces the
	// cooldown.
	ExpiresAtMillis     int64
	QuarantineEndMillis int64
}

// DeriveSaleStatus computes the sale status from one snapshot.
//
// Precedence: a completed sale deal always wins, even if the raw
// lifecycle tag has since moved past Hold. The record is immutable once
// written and must stay renderable to everyone.
func DeriveSaleStatus(snapGate gate.State, snap *capsule.Snapshot) SaleStatus {
	if anyPending(snapGate) || snap == nil {
		return SaleStatus{Kind: SaleNoData}
	}

	if snap.CompletedDeal != nil {
		return SaleStatus{Kind: SaleSold, Price: snap.CompletedDeal.Price}
	}

	if deal := snap.State.SaleDeal(); deal != nil && deal.Phase == capsule.SaleDealAccept {
		return SaleStatus{Kind: SaleSold, Price: acceptedPrice(snap, deal)}
	}

	if !snap.State.IsHold() {
		return SaleStatus{Kind: SaleNoData}
	}
	if snap.Receiver.IsAnonymous() {
		return SaleStatus{Kind: SaleIntentionNotSet}
	}
	if snap.Listing == nil {
		return SaleStatus{Kind: SaleNotListed}
	}
	return SaleStatus{
		Kind:                SaleListed,
		Price:               snap.Listing.Price,
		ExpiresAtMillis:     snap.Listing.ExpiresAtMillis,
		QuarantineEndMillis: snap.Listing.QuarantineEndMillis,
	}
}

// acceptedPrice resolves the price of an accepted deal: the listing if
// one is still present, otherwise the accepted buyer's offer.
func acceptedPrice(snap *capsule.Snapshot, deal *capsule.SaleDealState) uint64 {
	if snap.Listing != nil {
		return snap.Listing.Price
	}
	if offer := snap.OfferFrom(deal.Buyer); offer != nil {
		return offer.Amount
	}
	return 0
}
