package cli

import (
	"fmt"

	"github.com/rileyhilliard/zbdtop/internal/config"
	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/spf13/cobra"
)

// addGlobalFlags registers --config, --verbose and --no-color, shared by
// every subcommand.
func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default ~/.config/zbdtop/config.yaml)")
	pf.BoolP("verbose", "v", false, "enable zone library debug messages")
	pf.Bool("no-color", false, "disable colored output")
}

// addMonitorFlags registers the dashboard flags.
func addMonitorFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntP("interval", "i", config.DefaultIntervalMs, "refresh interval in milliseconds (0 = 500)")
	f.IntP("width", "w", 0, "grid columns (0 = automatic)")
	f.IntP("height", "H", 0, "visible grid rows (0 = automatic)")
	addBlockFlag(cmd)
	f.String("log-file", "", "write log messages to this file while the dashboard runs")
}

// addBlockFlag registers --block on commands that print zone offsets.
func addBlockFlag(cmd *cobra.Command) {
	cmd.Flags().Int64P("block", "b", 1, "display unit in bytes for offsets and sizes")
}

// requireDevice accepts exactly one positional argument, the device path.
func requireDevice(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0 || args[0] == "":
		return errors.New(errors.ErrConfig,
			"No device specified",
			fmt.Sprintf("Usage: %s", cmd.UseLine()))
	case len(args) > 1:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Too many arguments: %q", args[1:]),
			fmt.Sprintf("Usage: %s", cmd.UseLine()))
	}
	return nil
}

// flagError turns cobra/pflag parse failures into CONFIG errors.
func flagError(cmd *cobra.Command, err error) error {
	return errors.WrapWithCode(err, errors.ErrConfig,
		"Invalid command line",
		fmt.Sprintf("Run '%s --help' for usage.", cmd.CommandPath()))
}
