// Package cli implements the zbdtop command-line interface.
//
// # Command Structure
//
// The root command is the dashboard itself; the one-shot commands hang
// off it:
//
//	zbdtop [flags] <device>   - Live zone dashboard (needs a terminal)
//	zbdtop zones <device>     - Print every zone once (text, yaml, json)
//	zbdtop info <device>      - Device geometry and condition summary
//	zbdtop version            - Build information
//
// # Startup Order
//
// Every command that reads a device follows the same order:
//
//  1. Load the config (file, ZBDTOP_* environment, flags) and validate it
//  2. Open the device with the --block display unit
//  3. List every zone once
//
// A bad flag or config value therefore fails before any device I/O. The
// dashboard then lays the zones out on a grid, arms the signal bridge and
// hands the session to the monitor package, which closes it exactly once
// when the loop ends.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) are persistent flags on
// the root command. Dashboard flags (--interval, --width, --height,
// --block, --log-file) are local to the root; zones has its own --block.
// Flag values only override the config when they were set on the command
// line.
//
// # Errors and Exit Codes
//
// Commands return structured errors from internal/errors. Execute prints
// them to stderr and exits 1. With --json the error goes into the JSON
// envelope on stdout instead, and an ExitError carries the exit status.
package cli
