package settle

import "errors"

var (
	// ErrRatesExceedWhole indicates the configured reward shares sum to
	// more than 10,000 permyriad, leaving the seller a negative share.
	// This is a deployment-configuration error, not a runtime condition.
	ErrRatesExceedWhole = errors.New("settle: reward rates exceed 10000 permyriad")

	// ErrPriceTooLowForFees indicates the sale price cannot cover the
	// transfer chain's fees and the seller's amount. The split is
	// undefined; callers render "cannot estimate", never zero.
	ErrPriceTooLowForFees = errors.New("settle: sale price too low to cover transfer fees")

	// ErrTraceMismatch indicates the internal balance trace did not end
	// at the seller's principal plus one fee. It signals a bug in the
	// chain accounting, not bad input.
	ErrTraceMismatch = errors.New("settle: transit balance trace mismatch")
)
