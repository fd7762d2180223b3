package view

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capsulex/libcapsule-go/backend"
	"github.com/capsulex/libcapsule-go/ledger"
)

func TestMessageFor_KnownVariants(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"higher offer",
			&backend.CallError{Code: backend.ErrCodeHigherBuyerOfferExists},
			"A higher offer already exists. Raise your offer to continue.",
		},
		{
			"offer exceeds price",
			&backend.CallError{Code: backend.ErrCodeOfferAmountExceedsPrice},
			"Your offer exceeds the listed price. Accept the listing instead.",
		},
		{
			"price too low with minimum",
			&backend.CallError{Code: backend.ErrCodePriceTooLow, MinSellPrice: 100_000},
			"The price is below the minimum of 100000.",
		},
		{
			"insufficient balance from backend",
			&backend.CallError{Code: backend.ErrCodeInsufficientBalance},
			"Your balance does not cover this amount and its fees.",
		},
		{
			"insufficient balance from ledger",
			fmt.Errorf("approve: %w", ledger.ErrInsufficientBalance),
			"Your balance does not cover this amount and its fees.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFor(tt.err))
		})
	}
}

func TestMessageFor_UnknownVariantFallsBack(t *testing.T) {
	// A variant this client has never seen still yields usable copy.
	err := &backend.CallError{Code: "CapsuleFrozen", Detail: "ops hold"}
	assert.Equal(t, genericFailureMessage, MessageFor(err))

	assert.Equal(t, genericFailureMessage, MessageFor(errors.New("socket closed")))
	assert.Empty(t, MessageFor(nil))
}
