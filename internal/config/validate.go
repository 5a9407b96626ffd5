package config

import (
	"fmt"

	"github.com/rileyhilliard/zbdtop/internal/errors"
)

// Validate checks the merged config and returns a CONFIG error for the first
// bad value. It runs before any device I/O.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but zbdtop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade zbdtop or lower the version field.")
	}

	if cfg.Interval < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid refresh interval %d", cfg.Interval),
			"The interval is in milliseconds and can't be negative. Use 0 for the default of 500.")
	}

	if cfg.Block <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid block size %d", cfg.Block),
			"The block size is the display unit in bytes and must be at least 1.")
	}

	if cfg.Columns < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid number of columns %d", cfg.Columns),
			"Use 0 to size the grid automatically.")
	}

	if cfg.Rows < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid number of rows %d", cfg.Rows),
			"Use 0 to size the grid automatically.")
	}

	if err := validateGrid(cfg.Grid); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'grid' section in your config file.")
	}

	return nil
}

func validateGrid(g GridConfig) error {
	if g.SmallThreshold < 0 {
		return fmt.Errorf("grid.small_threshold can't be negative (got %d)", g.SmallThreshold)
	}
	if g.DefaultColumns < 0 {
		return fmt.Errorf("grid.default_columns can't be negative (got %d)", g.DefaultColumns)
	}
	if g.DefaultRows < 0 {
		return fmt.Errorf("grid.default_rows can't be negative (got %d)", g.DefaultRows)
	}
	return nil
}
