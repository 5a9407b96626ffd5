package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the user config, relative to home.
	GlobalConfigDir = ".config/zbdtop"
	// GlobalConfigFile is the user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. ZBDTOP_INTERVAL.
	EnvPrefix = "ZBDTOP"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"interval": "interval",
	"width":    "columns",
	"height":   "rows",
	"block":    "block",
	"verbose":  "verbose",
	"log-file": "log_file",
	"no-color": "no_color",
}

// Load builds the configuration. Precedence, highest first: flags that were
// set on the command line, ZBDTOP_* environment variables, the config file
// at path, built-in defaults. An empty path skips the file. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Check the path passed to --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.WrapWithCode(err, errors.ErrConfig,
						"Failed to bind --"+name, "")
				}
			}
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file:
// 1. Explicit path (from --config flag)
// 2. ~/.config/zbdtop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "the environment and flags"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	return cfg, nil
}

// setDefaults registers every key so environment overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("columns", d.Columns)
	v.SetDefault("rows", d.Rows)
	v.SetDefault("block", d.Block)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("no_color", d.NoColor)
	v.SetDefault("grid.small_threshold", d.Grid.SmallThreshold)
	v.SetDefault("grid.default_columns", d.Grid.DefaultColumns)
	v.SetDefault("grid.default_rows", d.Grid.DefaultRows)
}
