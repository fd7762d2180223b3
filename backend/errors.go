package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed indicates the HTTP request to the backend never
	// produced a response.
	ErrConnectionFailed = errors.New("backend: connection failed")

	// ErrInvalidResponse indicates the backend's response could not be
	// decoded.
	ErrInvalidResponse = errors.New("backend: invalid response")
)

// ErrorCode tags one variant of the backend's closed call-error union.
// The set is closed on the backend's side but this client must tolerate
// variants it has never seen: unknown tags map to user-facing fallback
// copy, they are never dropped.
type ErrorCode string

const (
	ErrCodeHigherBuyerOfferExists  ErrorCode = "HigherBuyerOfferExists"
	ErrCodeOfferAmountExceedsPrice ErrorCode = "OfferAmountExceedsPrice"
	ErrCodePriceTooLow             ErrorCode = "PriceTooLow"
	ErrCodeInsufficientBalance     ErrorCode = "InsufficientBalance"
)

// CallError is a structured rejection from the backend contract.
type CallError struct {
	Code ErrorCode `json:"code"`

	// MinSellPrice accompanies PriceTooLow: the lowest acceptable listing
	// price, inclusive.
	MinSellPrice uint64 `json:"min_sell_price,omitempty"`

	// Detail is the backend's debug text, for logs only.
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("backend: %s", e.Code)
}

// AsCallError unwraps a CallError from err, or returns nil.
func AsCallError(err error) *CallError {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
