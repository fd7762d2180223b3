package capsule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeState_TopLevel(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		phase Phase
	}{
		{"waiting activation", `{"WaitingActivation":null}`, PhaseWaitingActivation},
		{"capture", `{"Capture":{}}`, PhaseCapture},
		{"release", `{"Release":{}}`, PhaseRelease},
		{"closed", `{"Closed":{}}`, PhaseClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := DecodeState(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.phase, st.Phase)
			assert.Nil(t, st.Holding)
		})
	}
}

func TestDecodeState_HoldingSubStates(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		phase HoldingPhase
	}{
		{"start holding", `{"Holding":{"StartHolding":null}}`, HoldingStartHolding},
		{"fetch assets", `{"Holding":{"FetchAssets":{}}}`, HoldingFetchAssets},
		{"check assets", `{"Holding":{"CheckAssets":{}}}`, HoldingCheckAssets},
		{"validate assets", `{"Holding":{"ValidateAssets":{}}}`, HoldingValidateAssets},
		{"hold", `{"Holding":{"Hold":{}}}`, HoldingHold},
		{"cancel sale deal", `{"Holding":{"CancelSaleDeal":{}}}`, HoldingCancelSaleDeal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := DecodeState(json.RawMessage(tt.raw))
			require.NoError(t, err)
			require.Equal(t, PhaseHolding, st.Phase)
			require.NotNil(t, st.Holding)
			assert.Equal(t, tt.phase, st.Holding.Phase)
		})
	}
}

func TestDecodeState_Unsellable(t *testing.T) {
	st, err := DecodeState(json.RawMessage(`{"Holding":{"Unsellable":{"reason":"assets failed validation"}}}`))
	require.NoError(t, err)
	require.Equal(t, PhaseHolding, st.Phase)
	require.Equal(t, HoldingUnsellable, st.Holding.Phase)
	assert.Equal(t, "assets failed validation", st.Holding.UnsellableReason)
}

func TestDecodeState_SaleDeal(t *testing.T) {
	t.Run("waiting sell offer", func(t *testing.T) {
		st, err := DecodeState(json.RawMessage(`{"Holding":{"Hold":{"saleDeal":{"WaitingSellOffer":null}}}}`))
		require.NoError(t, err)
		require.True(t, st.IsHold())
		require.NotNil(t, st.SaleDeal())
		assert.Equal(t, SaleDealWaitingSellOffer, st.SaleDeal().Phase)
	})

	t.Run("trading", func(t *testing.T) {
		st, err := DecodeState(json.RawMessage(`{"Holding":{"Hold":{"saleDeal":{"Trading":{}}}}}`))
		require.NoError(t, err)
		assert.Equal(t, SaleDealTrading, st.SaleDeal().Phase)
	})

	t.Run("accept carries buyer", func(t *testing.T) {
		st, err := DecodeState(json.RawMessage(`{"Holding":{"Hold":{"saleDeal":{"Accept":{"buyer":"buyer-1"}}}}}`))
		require.NoError(t, err)
		require.Equal(t, SaleDealAccept, st.SaleDeal().Phase)
		assert.Equal(t, Account("buyer-1"), st.SaleDeal().Buyer)
	})

	t.Run("hold without deal", func(t *testing.T) {
		st, err := DecodeState(json.RawMessage(`{"Holding":{"Hold":{"saleDeal":null}}}`))
		require.NoError(t, err)
		require.True(t, st.IsHold())
		assert.Nil(t, st.SaleDeal())
	})
}

func TestDecodeState_IllegalInputs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"unknown top tag", `{"Hibernating":{}}`, ErrUnknownStateTag},
		{"unknown holding tag", `{"Holding":{"Defrosting":{}}}`, ErrUnknownStateTag},
		{"unknown deal tag", `{"Holding":{"Hold":{"saleDeal":{"Haggling":{}}}}}`, ErrUnknownStateTag},
		{"two top tags", `{"Capture":{},"Release":{}}`, ErrAmbiguousState},
		{"two holding tags", `{"Holding":{"Hold":{},"Unsellable":{}}}`, ErrAmbiguousState},
		{"empty object", `{}`, ErrEmptyState},
		{"null", `null`, ErrEmptyState},
		{"empty holding", `{"Holding":{}}`, ErrEmptyState},
		{"not an object", `"Holding"`, ErrInvalidStatePayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := DecodeState(json.RawMessage(tt.raw))
			require.ErrorIs(t, err, tt.wantErr)
			// Undecodable input degrades to the explicit illegal terminal,
			// never to a usable-looking phase.
			assert.Equal(t, PhaseIllegal, st.Phase)
		})
	}
}

func TestSnapshot_OfferFrom(t *testing.T) {
	snap := &Snapshot{
		BuyerOffers: []BuyerOffer{
			{Buyer: "buyer-1", Amount: 1000},
			{Buyer: "buyer-2", Amount: 2500},
		},
	}

	offer := snap.OfferFrom("buyer-2")
	require.NotNil(t, offer)
	assert.Equal(t, uint64(2500), offer.Amount)

	assert.Nil(t, snap.OfferFrom("buyer-3"))
	assert.Nil(t, snap.OfferFrom(""), "anonymous viewer has no attributed offer")
}

func TestPhaseStrings(t *testing.T) {
	assert.Equal(t, "Holding", PhaseHolding.String())
	assert.Equal(t, "Illegal", PhaseIllegal.String())
	assert.Equal(t, "Hold", HoldingHold.String())
	assert.Equal(t, "Accept", SaleDealAccept.String())
}
