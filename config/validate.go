package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil if
// valid. A reward-rate violation here is a deployment error: fail loudly
// at startup, never fall through to runtime.
func ValidateConfig(cfg Config) error {
	if err := validateURL(cfg.BackendURL); err != nil {
		return fmt.Errorf("%w: backend: %w", ErrInvalidURL, err)
	}
	if err := validateURL(cfg.LedgerURL); err != nil {
		return fmt.Errorf("%w: ledger: %w", ErrInvalidURL, err)
	}

	if cfg.LedgerID == "" {
		return ErrEmptyLedgerID
	}

	if err := cfg.Rates.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRates, err)
	}

	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// validateURL checks that raw is an absolute http(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q not supported", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
