package backtest

import (
	"fmt"

	"github.com/yourusername/corner-edge/internal/config"
)

// Config holds the settings for one resumable backtest run.
type Config struct {
	// Season is the league season being replayed, e.g. 2024.
	Season int

	// MaxDates caps how many unprocessed match dates one run handles.
	// Zero processes every remaining date.
	MaxDates int

	// Force re-runs dates that already have stored results, replacing
	// them instead of skipping.
	Force bool
}

// FromConfig converts app config to a backtest config.
func FromConfig(cfg *config.BacktestConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("backtest config is required")
	}
	bt := Config{
		Season:   cfg.Season,
		MaxDates: cfg.MaxDates,
		Force:    cfg.Force,
	}
	return bt, bt.Validate()
}

// Validate validates backtest config parameters.
func (c Config) Validate() error {
	if c.Season < 2000 || c.Season > 2100 {
		return fmt.Errorf("season %d out of range", c.Season)
	}
	if c.MaxDates < 0 {
		return fmt.Errorf("max dates cannot be negative")
	}
	return nil
}
