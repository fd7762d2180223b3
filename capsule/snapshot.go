package capsule

// Snapshot is one consistent read of a capsule's backend state. A snapshot
// is immutable once fetched: every derivation in a single projection pass
// reads from the same snapshot value and never observes a partial update.
type Snapshot struct {
	CapsuleID string

	State LifecycleState

	// Owner is the principal the backend reports as the capsule's owner.
	Owner Account

	// EscrowAccount is the backend's own ledger account, the spender a
	// buyer approves before the backend executes the sale transfers.
	EscrowAccount Account

	// Receiver is the payout account the owner configured for sale
	// proceeds. Empty means no sale intention has been set.
	Receiver Account

	// Listing is the active sell offer, or nil when no price is set.
	Listing *Listing

	// BuyerOffers are the open buyer offers on the capsule.
	BuyerOffers []BuyerOffer

	// CompletedDeal is the record of a finished sale. It is written once
	// by the backend and never mutated; when present it takes precedence
	// over the live state for rendering, whatever the current tag is.
	CompletedDeal *CompletedDeal
}

// Listing is an active sell offer on a capsule.
type Listing struct {
	Price               uint64 `json:"price"` // atomic units
	ExpiresAtMillis     int64  `json:"expires_at_millis"`
	QuarantineEndMillis int64  `json:"quarantine_end_millis,omitempty"` // 0 when no quarantine applies
}

// BuyerOffer is an open offer from a prospective buyer.
type BuyerOffer struct {
	Buyer  Account `json:"buyer"`
	Amount uint64  `json:"amount"` // atomic units
}

// CompletedDeal is the immutable record of a concluded sale.
type CompletedDeal struct {
	Buyer          Account `json:"buyer"`
	Seller         Account `json:"seller"`
	Price          uint64  `json:"price"` // atomic units
	ClosedAtMillis int64   `json:"closed_at_millis"`
}

// OfferFrom returns the buyer offer attributed to the given account, or nil.
func (s *Snapshot) OfferFrom(buyer Account) *BuyerOffer {
	if buyer.IsAnonymous() {
		return nil
	}
	for i := range s.BuyerOffers {
		if s.BuyerOffers[i].Buyer == buyer {
			return &s.BuyerOffers[i]
		}
	}
	return nil
}
