// Package config holds the deployment configuration for the marketplace
// decision layer: endpoints for the backend and ledger collaborators, the
// reward rates, and ambient settings.
//
// Configuration is loaded from a simple key=value file with an optional
// .env overlay. Invariant violations, above all reward rates summing
// over the whole, are fatal at startup and must never reach a user.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/capsulex/libcapsule-go/settle"
)

// Config holds all deployment settings.
type Config struct {
	// BackendURL is the base URL of the escrow backend gateway.
	BackendURL string

	// LedgerURL is the base URL of the value-transfer ledger gateway.
	LedgerURL string

	// LedgerID selects the currency ledger at the gateway.
	LedgerID string

	// Rates are the reward shares in permyriad. Their sum must leave a
	// non-negative remainder for the seller.
	Rates settle.Rates

	// DataDir is where the local cache database lives.
	DataDir string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		LedgerID: "ulps",
		DataDir:  filepath.Join(home, ".capsulex"),
		LogLevel: "info",
	}
}

// LoadConfig reads a key=value configuration file into the defaults.
// Lines starting with '#' and blank lines are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		if err := cfg.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return cfg, fmt.Errorf("config: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv overlays settings from the environment, optionally loading a
// .env file first (missing .env is not an error). Environment keys are
// the config keys upper-cased with a CAPSULEX_ prefix, e.g.
// CAPSULEX_BACKEND_URL.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	for _, key := range []string{
		"backend_url", "ledger_url", "ledger_id",
		"referral_permyriad", "developer_permyriad", "hub_permyriad",
		"data_dir", "log_level",
	} {
		env := "CAPSULEX_" + strings.ToUpper(key)
		if value, ok := os.LookupEnv(env); ok {
			if err := c.set(key, value); err != nil {
				return fmt.Errorf("config: %s: %w", env, err)
			}
		}
	}
	return nil
}

// set applies one key=value pair.
func (c *Config) set(key, value string) error {
	switch key {
	case "backend_url":
		c.BackendURL = value
	case "ledger_url":
		c.LedgerURL = value
	case "ledger_id":
		c.LedgerID = value
	case "referral_permyriad":
		return setPermyriad(&c.Rates.ReferralPermyriad, value)
	case "developer_permyriad":
		return setPermyriad(&c.Rates.DeveloperPermyriad, value)
	case "hub_permyriad":
		return setPermyriad(&c.Rates.HubPermyriad, value)
	case "data_dir":
		c.DataDir = value
	case "log_level":
		c.LogLevel = value
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfigLine, key)
	}
	return nil
}

// setPermyriad parses a permyriad rate value.
func setPermyriad(dst *uint64, value string) error {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRate, value)
	}
	if n > settle.PermyriadWhole {
		return fmt.Errorf("%w: %d", ErrInvalidRate, n)
	}
	*dst = n
	return nil
}
