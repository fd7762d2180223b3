package ledger

import "errors"

var (
	// ErrConnectionFailed indicates the HTTP request to the ledger never
	// produced a response.
	ErrConnectionFailed = errors.New("ledger: connection failed")

	// ErrInvalidResponse indicates the ledger's response could not be
	// decoded.
	ErrInvalidResponse = errors.New("ledger: invalid response")

	// ErrInsufficientBalance indicates the account cannot cover the
	// requested amount plus the transfer fee.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
)
