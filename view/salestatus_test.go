package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capsulex/libcapsule-go/capsule"
	"github.com/capsulex/libcapsule-go/gate"
)

var (
	settled = gate.State{Loaded: true}
	pending = gate.State{InFlight: true}
)

func TestDeriveSaleStatus_NoData(t *testing.T) {
	snap := &capsule.Snapshot{State: hold(nil)}

	assert.Equal(t, SaleNoData, DeriveSaleStatus(pending, snap).Kind, "snapshot still loading")
	assert.Equal(t, SaleNoData, DeriveSaleStatus(settled, nil).Kind)

	capture := &capsule.Snapshot{State: capsule.LifecycleState{Phase: capsule.PhaseCapture}}
	assert.Equal(t, SaleNoData, DeriveSaleStatus(settled, capture).Kind, "no sale info outside Hold")
}

func TestDeriveSaleStatus_HoldProgression(t *testing.T) {
	snap := &capsule.Snapshot{State: hold(nil)}
	assert.Equal(t, SaleIntentionNotSet, DeriveSaleStatus(settled, snap).Kind)

	snap.Receiver = "payout-1"
	assert.Equal(t, SaleNotListed, DeriveSaleStatus(settled, snap).Kind)

	snap.Listing = &capsule.Listing{Price: 5_000_000, ExpiresAtMillis: 1700000000000, QuarantineEndMillis: 1690000000000}
	got := DeriveSaleStatus(settled, snap)
	assert.Equal(t, SaleListed, got.Kind)
	assert.Equal(t, uint64(5_000_000), got.Price)
	assert.Equal(t, int64(1700000000000), got.ExpiresAtMillis)
	assert.Equal(t, int64(1690000000000), got.QuarantineEndMillis)
}

func TestDeriveSaleStatus_Sold(t *testing.T) {
	t.Run("accepted deal with listing", func(t *testing.T) {
		snap := &capsule.Snapshot{
			State:    holdAccepted("buyer-1"),
			Receiver: "payout-1",
			Listing:  &capsule.Listing{Price: 5_000_000},
		}
		got := DeriveSaleStatus(settled, snap)
		assert.Equal(t, SaleSold, got.Kind)
		assert.Equal(t, uint64(5_000_000), got.Price)
	})

	t.Run("accepted deal priced by buyer offer", func(t *testing.T) {
		snap := &capsule.Snapshot{
			State:       holdAccepted("buyer-1"),
			BuyerOffers: []capsule.BuyerOffer{{Buyer: "buyer-1", Amount: 4_200_000}},
		}
		got := DeriveSaleStatus(settled, snap)
		assert.Equal(t, SaleSold, got.Kind)
		assert.Equal(t, uint64(4_200_000), got.Price)
	})
}

func TestDeriveSaleStatus_CompletedDealPrecedence(t *testing.T) {
	// The completed-deal record wins even though the live tag has moved
	// past Hold entirely.
	snap := &capsule.Snapshot{
		State:         capsule.LifecycleState{Phase: capsule.PhaseRelease},
		Receiver:      "payout-1",
		CompletedDeal: &capsule.CompletedDeal{Buyer: "buyer-1", Seller: "owner-1", Price: 3_000_000},
	}
	got := DeriveSaleStatus(settled, snap)
	assert.Equal(t, SaleSold, got.Kind)
	assert.Equal(t, uint64(3_000_000), got.Price)
}
