package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/spf13/cobra"
)

// rootCmd is the dashboard itself; zones, info and version hang off it.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zbdtop [flags] <device>",
		Short: "Live zone map of a zoned block device",
		Long: `zbdtop draws every zone of a zoned block device (SMR disk, ZNS namespace,
null_blk in zoned mode) as one cell of a grid and keeps the visible part
current by re-reading zone state on a fixed interval.

Each cell shows the zone condition by color and how much of the zone
capacity has been written. The selected zone's details are shown under
the grid.

Offsets and sizes can be shown in a custom unit with --block; the unit
must divide the device zone size.

Examples:
  zbdtop /dev/nullb0
  zbdtop -i 250 -w 16 /dev/nvme0n2
  zbdtop -b 4096 /dev/sdb`,
		Args:          requireDevice,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return monitorCommand(cmd, args[0])
		},
	}

	addGlobalFlags(cmd)
	addMonitorFlags(cmd)
	cmd.SetFlagErrorFunc(flagError)

	cmd.AddCommand(newZonesCmd(), newInfoCmd(), newVersionCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	os.Exit(run(rootCmd, os.Args[1:], os.Stderr))
}

// run executes cmd with args and returns the process exit code. Structured
// errors are printed to stderr; an ExitError means output was already written.
func run(cmd *cobra.Command, args []string, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(stderr, msg)
	return 1
}
