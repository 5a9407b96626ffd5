package cli

import (
	"bytes"
	"testing"

	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_NoDevice(t *testing.T) {
	noDeviceIO(t)

	res := execute(t)

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "No device specified")
	assert.Contains(t, res.stderr, "zbdtop [flags] <device>")
}

func TestRun_TooManyArgs(t *testing.T) {
	noDeviceIO(t)

	res := execute(t, "/dev/nullb0", "/dev/nullb1")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Too many arguments")
}

func TestRun_UnknownFlag(t *testing.T) {
	noDeviceIO(t)

	res := execute(t, "--bogus", "/dev/nullb0")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Invalid command line")
	assert.Contains(t, res.stderr, "unknown flag: --bogus")
	assert.Contains(t, res.stderr, "zbdtop --help")
}

func TestRun_NonNumericFlag(t *testing.T) {
	noDeviceIO(t)

	res := execute(t, "-i", "fast", "/dev/nullb0")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Invalid command line")
}

func TestRun_ConfigErrorsBeforeDeviceIO(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "zero block", args: []string{"-b", "0"}, want: "Invalid block size 0"},
		{name: "negative block", args: []string{"--block", "-4096"}, want: "Invalid block size -4096"},
		{name: "negative interval", args: []string{"-i", "-5"}, want: "Invalid refresh interval -5"},
		{name: "negative width", args: []string{"-w", "-1"}, want: "Invalid number of columns -1"},
		{name: "negative height", args: []string{"-H", "-1"}, want: "Invalid number of rows -1"},
		{name: "missing config file", args: []string{"--config", "/nonexistent/zbdtop.yaml"}, want: "config file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noDeviceIO(t)
			stubTerminal(t, true)

			res := execute(t, append(tt.args, "/dev/nullb0")...)

			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestRun_HelpExitsZero(t *testing.T) {
	res := execute(t, "--help")

	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "zbdtop [flags] <device>")
	assert.Contains(t, res.stdout, "--interval")
	assert.Contains(t, res.stdout, "zones")
	assert.Contains(t, res.stdout, "info")
}

func TestRun_ExitErrorIsSilent(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "x",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(*cobra.Command, []string) error {
			return errors.NewExitError(3)
		},
	}
	var stderr bytes.Buffer

	code := run(cmd, nil, &stderr)

	assert.Equal(t, 3, code)
	assert.Empty(t, stderr.String())
}

func TestRun_PlainErrorGetsNewline(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "x",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(*cobra.Command, []string) error {
			return assert.AnError
		},
	}
	var stderr bytes.Buffer

	code := run(cmd, nil, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, assert.AnError.Error()+"\n", stderr.String())
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, tt := range []struct{ name, short, def string }{
		{"interval", "i", "500"},
		{"width", "w", "0"},
		{"height", "H", "0"},
		{"block", "b", "1"},
		{"log-file", "", ""},
	} {
		f := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, f, tt.name)
		assert.Equal(t, tt.short, f.Shorthand, tt.name)
		assert.Equal(t, tt.def, f.DefValue, tt.name)
	}

	for _, name := range []string{"config", "verbose", "no-color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRequireDevice(t *testing.T) {
	cmd := newRootCmd()

	assert.NoError(t, requireDevice(cmd, []string{"/dev/nullb0"}))

	err := requireDevice(cmd, nil)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	err = requireDevice(cmd, []string{""})
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	err = requireDevice(cmd, []string{"a", "b"})
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
