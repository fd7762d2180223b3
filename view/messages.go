package view

import (
	"errors"
	"fmt"

	"github.com/capsulex/libcapsule-go/backend"
	"github.com/capsulex/libcapsule-go/ledger"
)

// genericFailureMessage is the fallback for error variants this client
// does not know. New backend variants must degrade to it, never vanish.
const genericFailureMessage = "Unable to complete the operation. Please try again."

// MessageFor maps a failed remote call onto user-facing copy. Known
// recoverable rejections get specific text; everything else falls back
// to the generic message.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}

	if ce := backend.AsCallError(err); ce != nil {
		switch ce.Code {
		case backend.ErrCodeHigherBuyerOfferExists:
			return "A higher offer already exists. Raise your offer to continue."
		case backend.ErrCodeOfferAmountExceedsPrice:
			return "Your offer exceeds the listed price. Accept the listing instead."
		case backend.ErrCodePriceTooLow:
			if ce.MinSellPrice > 0 {
				return fmt.Sprintf("The price is below the minimum of %d.", ce.MinSellPrice)
			}
			return "The price is below the minimum."
		case backend.ErrCodeInsufficientBalance:
			return "Your balance does not cover this amount and its fees."
		default:
			return genericFailureMessage
		}
	}

	if errors.Is(err, ledger.ErrInsufficientBalance) {
		return "Your balance does not cover this amount and its fees."
	}
	return genericFailureMessage
}
