// Package settle computes the preview split of a capsule sale price across
// the marketplace's fixed reward chain: referral, developer, hub, then the
// seller. It reproduces the backend's sequential transfer accounting so
// the preview matches what the backend will actually pay out, to the
// atomic unit.
//
// All arithmetic is integer-only in atomic units. Rounding loss from the
// floor-divided shares is absorbed by the hub reward, never by the seller
// or the referral/developer payees, and never silently dropped.
package settle

import "fmt"

// PermyriadWhole is the denominator for reward rates: parts per 10,000.
const PermyriadWhole = 10000

// transferCount is the number of ledger transfers in the full chain:
// price into transit, three reward payouts, and the seller payout.
// Each transfer costs one ledger fee.
const transferCount = 5

// Rates holds the deployment-configured reward shares in permyriad.
// The seller keeps the remainder of the whole.
type Rates struct {
	ReferralPermyriad  uint64
	DeveloperPermyriad uint64
	HubPermyriad       uint64
}

// Validate checks the deployment invariant that the reward shares leave a
// non-negative remainder for the seller. A violation is a configuration
// error and must fail at startup, never reach a user.
func (r Rates) Validate() error {
	sum := r.ReferralPermyriad + r.DeveloperPermyriad + r.HubPermyriad
	if sum > PermyriadWhole {
		return fmt.Errorf("%w: %d", ErrRatesExceedWhole, sum)
	}
	return nil
}

// SellerPermyriad returns the seller's share of the whole.
func (r Rates) SellerPermyriad() uint64 {
	return PermyriadWhole - r.ReferralPermyriad - r.DeveloperPermyriad - r.HubPermyriad
}

// Inputs are the numeric inputs to one settlement preview.
type Inputs struct {
	SalePrice uint64 // atomic units
	LedgerFee uint64 // atomic units, cost of one ledger transfer
	Rates     Rates
}

// Result is the computed split for one sale price. All values are atomic
// units. Results are display previews: computed fresh on every input
// change and never persisted.
type Result struct {
	ReferralReward  uint64
	DeveloperReward uint64
	HubReward       uint64

	// HubRewardIncludingFees adds the five transfer fees of the whole
	// chain to the hub share. This is the "total deducted for fees"
	// figure shown to the seller.
	HubRewardIncludingFees uint64

	TotalReward              uint64
	TotalRewardIncludingFees uint64

	SellerAmount uint64
}

// Calculate computes the reward split for the given inputs.
//
// The chain models a transit account holding salePrice minus the fee
// already paid to move funds into transit, paying out in fixed order:
// referral, developer, hub, seller, each payout preceded by a fee debit.
// At every step the payout may not exceed
//
//	allowed = balance − sellerAmount − 2×fee
//
// which reserves the next fee plus the seller's principal and final fee.
// Referral and developer get their nominal floor(price×rate/10000) share;
// the hub gets exactly the allowed amount at its step, absorbing all
// accumulated rounding remainder.
//
// Calculate returns ErrPriceTooLowForFees when the chain cannot be
// satisfied: a price too small relative to fees, which the backend would
// itself reject. Callers must render that as "cannot estimate", never as
// zero.
func Calculate(in Inputs) (*Result, error) {
	if err := in.Rates.Validate(); err != nil {
		return nil, err
	}

	sellerAmount := in.SalePrice * in.Rates.SellerPermyriad() / PermyriadWhole
	referral := in.SalePrice * in.Rates.ReferralPermyriad / PermyriadWhole
	developer := in.SalePrice * in.Rates.DeveloperPermyriad / PermyriadWhole

	if in.SalePrice < in.LedgerFee {
		return nil, fmt.Errorf("%w: price %d below transit fee %d", ErrPriceTooLowForFees, in.SalePrice, in.LedgerFee)
	}
	balance := in.SalePrice - in.LedgerFee

	balance, err := payout(balance, referral, sellerAmount, in.LedgerFee, "referral")
	if err != nil {
		return nil, err
	}
	balance, err = payout(balance, developer, sellerAmount, in.LedgerFee, "developer")
	if err != nil {
		return nil, err
	}

	hub, ok := allowedAmount(balance, sellerAmount, in.LedgerFee)
	if !ok {
		return nil, fmt.Errorf("%w: hub step balance %d", ErrPriceTooLowForFees, balance)
	}
	balance -= in.LedgerFee + hub

	// The hub payout is defined as exactly the allowed amount, so the
	// trace must land on the seller's principal plus the final fee. A
	// mismatch means the accounting above diverged from the backend's.
	if balance != sellerAmount+in.LedgerFee {
		return nil, fmt.Errorf("%w: trace ended at %d, want %d", ErrTraceMismatch, balance, sellerAmount+in.LedgerFee)
	}

	hubIncludingFees := hub + transferCount*in.LedgerFee
	return &Result{
		ReferralReward:           referral,
		DeveloperReward:          developer,
		HubReward:                hub,
		HubRewardIncludingFees:   hubIncludingFees,
		TotalReward:              referral + developer + hub,
		TotalRewardIncludingFees: referral + developer + hubIncludingFees,
		SellerAmount:             sellerAmount,
	}, nil
}

// payout applies one fee debit plus one nominal reward payout to the
// transit balance, checking the reward against the allowed amount as of
// this step.
func payout(balance, reward, sellerAmount, fee uint64, step string) (uint64, error) {
	allowed, ok := allowedAmount(balance, sellerAmount, fee)
	if !ok || reward > allowed {
		return 0, fmt.Errorf("%w: %s reward %d exceeds allowed at balance %d", ErrPriceTooLowForFees, step, reward, balance)
	}
	return balance - fee - reward, nil
}

// allowedAmount is the most that may be paid out next while preserving
// the upcoming fee and the seller's principal plus its own transfer fee.
func allowedAmount(balance, sellerAmount, fee uint64) (uint64, bool) {
	reserved := sellerAmount + 2*fee
	if balance < reserved {
		return 0, false
	}
	return balance - reserved, true
}
