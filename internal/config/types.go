package config

import (
	"time"

	"github.com/rileyhilliard/zbdtop/internal/grid"
)

// CurrentConfigVersion is the schema version for the config file.
const CurrentConfigVersion = 1

// DefaultIntervalMs is the refresh interval used when none is set or 0 is given.
const DefaultIntervalMs = 500

// Config is the merged result of defaults, config file, environment and flags.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the refresh period in milliseconds. 0 means the default.
	Interval int `yaml:"interval" mapstructure:"interval"`

	// Columns and Rows request a grid shape. 0 means automatic.
	Columns int `yaml:"columns" mapstructure:"columns"`
	Rows    int `yaml:"rows" mapstructure:"rows"`

	// Block is the display unit in bytes applied to zone offsets and sizes.
	Block int64 `yaml:"block" mapstructure:"block"`

	// Verbose turns on zone library debug logging.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// LogFile receives log output while the dashboard owns the terminal.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	Grid GridConfig `yaml:"grid" mapstructure:"grid"`
}

// GridConfig overrides the automatic grid sizing constants.
type GridConfig struct {
	// SmallThreshold is the zone count below which an unconstrained grid
	// is laid out near-square.
	SmallThreshold int `yaml:"small_threshold" mapstructure:"small_threshold"`

	// DefaultColumns and DefaultRows apply when no shape is requested and
	// the device is not small.
	DefaultColumns int `yaml:"default_columns" mapstructure:"default_columns"`
	DefaultRows    int `yaml:"default_rows" mapstructure:"default_rows"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	d := grid.DefaultDefaults()
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: DefaultIntervalMs,
		Block:    1,
		Grid: GridConfig{
			SmallThreshold: d.SmallThreshold,
			DefaultColumns: d.Columns,
			DefaultRows:    d.Rows,
		},
	}
}

// RefreshInterval returns the refresh period, substituting the default for 0.
func (c *Config) RefreshInterval() time.Duration {
	if c.Interval <= 0 {
		return DefaultIntervalMs * time.Millisecond
	}
	return time.Duration(c.Interval) * time.Millisecond
}

// Divisor returns the display unit as an unsigned divisor.
func (c *Config) Divisor() uint64 {
	if c.Block <= 1 {
		return 1
	}
	return uint64(c.Block)
}

// GridDefaults returns the grid sizing constants.
func (c *Config) GridDefaults() grid.Defaults {
	return grid.Defaults{
		SmallThreshold: c.Grid.SmallThreshold,
		Columns:        c.Grid.DefaultColumns,
		Rows:           c.Grid.DefaultRows,
	}
}
