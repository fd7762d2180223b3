package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capsulex/libcapsule-go/capsule"
)

// hold builds a Holding/Hold state with an optional sale-deal phase.
func hold(deal *capsule.SaleDealState) capsule.LifecycleState {
	return capsule.LifecycleState{
		Phase:   capsule.PhaseHolding,
		Holding: &capsule.HoldingState{Phase: capsule.HoldingHold, SaleDeal: deal},
	}
}

func holdTrading() capsule.LifecycleState {
	return hold(&capsule.SaleDealState{Phase: capsule.SaleDealTrading})
}

func holdAccepted(buyer capsule.Account) capsule.LifecycleState {
	return hold(&capsule.SaleDealState{Phase: capsule.SaleDealAccept, Buyer: buyer})
}

func holdingPhase(p capsule.HoldingPhase) capsule.LifecycleState {
	return capsule.LifecycleState{Phase: capsule.PhaseHolding, Holding: &capsule.HoldingState{Phase: p}}
}

func TestBuyerCanSetOffer(t *testing.T) {
	trading := holdTrading()

	assert.True(t, BuyerCanSetOffer(RoleGuest, trading, true))
	assert.True(t, BuyerCanSetOffer(RolePotentialBuyer, trading, true))

	assert.False(t, BuyerCanSetOffer(RoleOwner, trading, true), "owner cannot bid on own capsule")
	assert.False(t, BuyerCanSetOffer(RoleGuest, trading, false), "anonymous viewers cannot bid")
	assert.False(t, BuyerCanSetOffer(RoleGuest, hold(nil), true), "no deal, no bidding")
	assert.False(t, BuyerCanSetOffer(RoleGuest, holdAccepted("b"), true), "accepted deal is closed to new offers")
	assert.False(t, BuyerCanSetOffer(RoleGuest, holdingPhase(capsule.HoldingFetchAssets), true))
}

func TestBuyerCanCancelOffer(t *testing.T) {
	trading := holdTrading()

	assert.True(t, BuyerCanCancelOffer(RolePotentialBuyer, trading, true))
	assert.False(t, BuyerCanCancelOffer(RolePotentialBuyer, trading, false))
	assert.False(t, BuyerCanCancelOffer(RoleGuest, trading, false))
	assert.False(t, BuyerCanCancelOffer(RolePotentialBuyer, holdAccepted("b"), true))
}

func TestOwnerCanAcceptBuyerOffer(t *testing.T) {
	trading := holdTrading()

	assert.True(t, OwnerCanAcceptBuyerOffer(RoleOwner, trading, true))
	assert.False(t, OwnerCanAcceptBuyerOffer(RoleOwner, trading, false), "no offer to accept")
	assert.False(t, OwnerCanAcceptBuyerOffer(RolePotentialBuyer, trading, true))
	assert.False(t, OwnerCanAcceptBuyerOffer(RoleOwner, hold(nil), true))
	assert.False(t, OwnerCanAcceptBuyerOffer(RoleOwner, holdAccepted("b"), true))
}

func TestBuyerCanAcceptSellerOffer(t *testing.T) {
	trading := holdTrading()

	assert.True(t, BuyerCanAcceptSellerOffer(RoleGuest, trading, true, true))
	assert.False(t, BuyerCanAcceptSellerOffer(RoleGuest, trading, false, true), "nothing listed")
	assert.False(t, BuyerCanAcceptSellerOffer(RoleGuest, trading, true, false), "anonymous")
	assert.False(t, BuyerCanAcceptSellerOffer(RoleOwner, trading, true, true))
}

func TestOwnerCanSetSaleIntention(t *testing.T) {
	assert.True(t, OwnerCanSetSaleIntention(RoleOwner, hold(nil), false))
	assert.False(t, OwnerCanSetSaleIntention(RoleOwner, hold(nil), true), "already configured")
	assert.False(t, OwnerCanSetSaleIntention(RoleGuest, hold(nil), false))
	assert.False(t, OwnerCanSetSaleIntention(RoleOwner, holdingPhase(capsule.HoldingCheckAssets), false))
}

func TestOwnerCanCancelSaleIntention(t *testing.T) {
	assert.True(t, OwnerCanCancelSaleIntention(RoleOwner, hold(nil), true))
	assert.False(t, OwnerCanCancelSaleIntention(RoleOwner, hold(nil), false))
	assert.False(t, OwnerCanCancelSaleIntention(RoleOwner, holdingPhase(capsule.HoldingCancelSaleDeal), true),
		"cancellation already in progress")
	assert.False(t, OwnerCanCancelSaleIntention(RoleGuest, hold(nil), true))
}

func TestOwnerCanSetSaleOffer(t *testing.T) {
	assert.True(t, OwnerCanSetSaleOffer(RoleOwner, hold(nil), true))
	assert.True(t, OwnerCanSetSaleOffer(RoleOwner, holdTrading(), true))
	assert.False(t, OwnerCanSetSaleOffer(RoleOwner, hold(nil), false), "intention first")
	assert.False(t, OwnerCanSetSaleOffer(RoleOwner, holdAccepted("b"), true))
	assert.False(t, OwnerCanSetSaleOffer(RoleGuest, hold(nil), true))
}

func TestOwnerCanCancelSaleOffer(t *testing.T) {
	assert.True(t, OwnerCanCancelSaleOffer(RoleOwner, holdTrading(), true))
	assert.False(t, OwnerCanCancelSaleOffer(RoleOwner, holdTrading(), false))
	assert.False(t, OwnerCanCancelSaleOffer(RoleOwner, holdAccepted("b"), true))
	assert.False(t, OwnerCanCancelSaleOffer(RolePotentialBuyer, holdTrading(), true))
}

func TestOwnerCanStartRelease(t *testing.T) {
	assert.True(t, OwnerCanStartRelease(RoleOwner, hold(nil)))
	assert.True(t, OwnerCanStartRelease(RoleOwner, holdingPhase(capsule.HoldingUnsellable)))
	assert.False(t, OwnerCanStartRelease(RoleOwner, holdingPhase(capsule.HoldingFetchAssets)))
	assert.False(t, OwnerCanStartRelease(RoleOwner, capsule.LifecycleState{Phase: capsule.PhaseRelease}))
	assert.False(t, OwnerCanStartRelease(RoleGuest, hold(nil)))
}

func TestOwnerCanCancelSaleDeal(t *testing.T) {
	assert.True(t, OwnerCanCancelSaleDeal(RoleOwner, holdTrading()))
	assert.True(t, OwnerCanCancelSaleDeal(RoleOwner, hold(&capsule.SaleDealState{Phase: capsule.SaleDealWaitingSellOffer})))
	assert.False(t, OwnerCanCancelSaleDeal(RoleOwner, holdAccepted("b")), "accepted deals cannot be cancelled")
	assert.False(t, OwnerCanCancelSaleDeal(RoleOwner, hold(nil)))
	assert.False(t, OwnerCanCancelSaleDeal(RoleGuest, holdTrading()))
}

func TestDeriveRole(t *testing.T) {
	snap := &capsule.Snapshot{
		Owner:       "owner-1",
		BuyerOffers: []capsule.BuyerOffer{{Buyer: "buyer-1", Amount: 100}},
	}

	assert.Equal(t, RoleOwner, DeriveRole("owner-1", snap))
	assert.Equal(t, RolePotentialBuyer, DeriveRole("buyer-1", snap))
	assert.Equal(t, RoleGuest, DeriveRole("someone-else", snap))
	assert.Equal(t, RoleGuest, DeriveRole("", snap), "anonymous is always a guest")
	assert.Equal(t, RoleGuest, DeriveRole("owner-1", nil))
}

func TestDeriveRole_Exclusivity(t *testing.T) {
	// Even if the backend reports the owner among the buyer offers, the
	// viewer is Owner: Owner and PotentialBuyer are mutually exclusive.
	snap := &capsule.Snapshot{
		Owner:       "owner-1",
		BuyerOffers: []capsule.BuyerOffer{{Buyer: "owner-1", Amount: 100}},
	}
	assert.Equal(t, RoleOwner, DeriveRole("owner-1", snap))
}
