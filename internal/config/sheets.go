package config

import (
	"fmt"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/common"
	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/sheets"
)

// SheetsConfig returns the Google Sheets settings ready for a writer.
// Precedence: config file or ALLOCATE_SHEETS_* env, then GOOGLE_SHEETS_* env,
// then defaults.
func (c *Config) SheetsConfig() (*sheets.Config, error) {
	cfg := c.Sheets
	def := sheets.DefaultConfig()
	if cfg.BatchSize == 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = def.TimeZone
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: sheets: %w", common.ErrInvalidConfig, err)
	}
	return &cfg, nil
}
