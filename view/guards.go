package view

import "github.com/capsulex/libcapsule-go/capsule"

// Guards are the pure predicates deciding whether an action is
// semantically legal for a (role, state) combination, independent of
// data-loading status. Each is a named function so the gating table can
// be tested without any snapshot plumbing. None of them may be cached
// across a role or snapshot change.

// dealPhase returns the sale-deal phase and whether a deal exists.
func dealPhase(st capsule.LifecycleState) (capsule.SaleDealPhase, bool) {
	deal := st.SaleDeal()
	if deal == nil {
		return 0, false
	}
	return deal.Phase, true
}

// inHoldingPhase reports whether the state is in Holding with the given
// sub-phase.
func inHoldingPhase(st capsule.LifecycleState, phase capsule.HoldingPhase) bool {
	return st.Phase == capsule.PhaseHolding && st.Holding != nil && st.Holding.Phase == phase
}

// BuyerCanSetOffer: a non-owner may place or raise an offer while the
// capsule is in Hold with an open Trading deal, and only when
// authenticated.
func BuyerCanSetOffer(role Role, st capsule.LifecycleState, authenticated bool) bool {
	phase, ok := dealPhase(st)
	return role != RoleOwner && authenticated && ok && phase == capsule.SaleDealTrading
}

// BuyerCanCancelOffer: a potential buyer may withdraw their own offer
// while the deal is still open.
func BuyerCanCancelOffer(role Role, st capsule.LifecycleState, hasOwnOffer bool) bool {
	phase, ok := dealPhase(st)
	return role == RolePotentialBuyer && hasOwnOffer && ok && phase == capsule.SaleDealTrading
}

// OwnerCanAcceptBuyerOffer: the owner may accept a named buyer's offer
// while the deal is Trading and that buyer's offer exists.
func OwnerCanAcceptBuyerOffer(role Role, st capsule.LifecycleState, buyerOfferExists bool) bool {
	phase, ok := dealPhase(st)
	return role == RoleOwner && buyerOfferExists && ok && phase == capsule.SaleDealTrading
}

// BuyerCanAcceptSellerOffer: an authenticated non-owner may take the
// listed price while the deal is Trading and a price is set.
func BuyerCanAcceptSellerOffer(role Role, st capsule.LifecycleState, listed, authenticated bool) bool {
	phase, ok := dealPhase(st)
	return role != RoleOwner && authenticated && listed && ok && phase == capsule.SaleDealTrading
}

// OwnerCanSetSaleIntention: the owner may configure a payout account in
// Hold when none is configured yet.
func OwnerCanSetSaleIntention(role Role, st capsule.LifecycleState, receiverConfigured bool) bool {
	return role == RoleOwner && st.IsHold() && !receiverConfigured
}

// OwnerCanCancelSaleIntention: the owner may clear a configured payout
// account, except while a deal cancellation is already in progress.
func OwnerCanCancelSaleIntention(role Role, st capsule.LifecycleState, receiverConfigured bool) bool {
	return role == RoleOwner && receiverConfigured &&
		!inHoldingPhase(st, capsule.HoldingCancelSaleDeal)
}

// OwnerCanSetSaleOffer: the owner may list a price in Hold once the
// payout account is configured and the deal has not been accepted.
func OwnerCanSetSaleOffer(role Role, st capsule.LifecycleState, receiverConfigured bool) bool {
	if role != RoleOwner || !st.IsHold() || !receiverConfigured {
		return false
	}
	phase, ok := dealPhase(st)
	return !ok || phase != capsule.SaleDealAccept
}

// OwnerCanCancelSaleOffer: the owner may delist while a price is set and
// the deal has not been accepted.
func OwnerCanCancelSaleOffer(role Role, st capsule.LifecycleState, listed bool) bool {
	if role != RoleOwner || !listed {
		return false
	}
	phase, ok := dealPhase(st)
	return !ok || phase != capsule.SaleDealAccept
}

// OwnerCanStartRelease: the owner may begin release from Hold or
// Unsellable.
func OwnerCanStartRelease(role Role, st capsule.LifecycleState) bool {
	return role == RoleOwner &&
		(st.IsHold() || inHoldingPhase(st, capsule.HoldingUnsellable))
}

// OwnerCanCancelSaleDeal: the owner may abort an open deal that has not
// been accepted.
func OwnerCanCancelSaleDeal(role Role, st capsule.LifecycleState) bool {
	phase, ok := dealPhase(st)
	return role == RoleOwner && ok && phase != capsule.SaleDealAccept
}
