package config

import "errors"

var (
	// ErrInvalidURL indicates an endpoint URL is malformed or not http(s).
	ErrInvalidURL = errors.New("config: invalid endpoint URL")

	// ErrEmptyLedgerID indicates no currency ledger was selected.
	ErrEmptyLedgerID = errors.New("config: ledger id must not be empty")

	// ErrInvalidRates indicates the reward rates violate the permyriad
	// deployment invariant.
	ErrInvalidRates = errors.New("config: invalid reward rates")

	// ErrInvalidRate indicates a single rate value is not a permyriad
	// integer.
	ErrInvalidRate = errors.New("config: invalid permyriad rate")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
