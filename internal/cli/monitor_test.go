package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/zbdtop/internal/grid"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/monitor"
	"github.com/rileyhilliard/zbdtop/internal/session"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
	zbdtesting "github.com/rileyhilliard/zbdtop/internal/zbd/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, isTTY bool) {
	t.Helper()
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return isTTY }
	t.Cleanup(func() { stdoutIsTerminal = orig })
}

// captureDashboard replaces the terminal loop with one that records the
// model and closes the session the way the real loop does.
func captureDashboard(t *testing.T) *monitor.Model {
	t.Helper()
	var captured monitor.Model
	orig := runDashboard
	runDashboard = func(m monitor.Model, sess *session.Session) error {
		captured = m
		return sess.Close()
	}
	t.Cleanup(func() { runDashboard = orig })
	return &captured
}

func TestMonitor_Wiring(t *testing.T) {
	dev := zbdtesting.NewFakeDevice(testZoneSize, 2, 18)
	withDevice(t, dev)
	stubTerminal(t, true)
	m := captureDashboard(t)

	res := execute(t, "-i", "250", "-w", "4", "-H", "2", "-b", "4096", "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, grid.Shape{Cols: 4, Rows: 5, VisibleRows: 2}, m.Layout().Shape())
	assert.Equal(t, 250*time.Millisecond, m.Scheduler().Interval())
	assert.Equal(t, 20, m.Layout().NrZones())

	z := m.Layout().At(0, 1).Zone()
	require.NotNil(t, z)
	assert.Equal(t, uint64(testZoneSize/4096), z.Start, "zones are shown in the display unit")
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestMonitor_AutomaticShape(t *testing.T) {
	dev := zbdtesting.NewFakeDevice(testZoneSize, 0, 64)
	withDevice(t, dev)
	stubTerminal(t, true)
	m := captureDashboard(t)

	res := execute(t, "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, grid.Shape{Cols: 8, Rows: 8, VisibleRows: 8}, m.Layout().Shape())
	assert.Equal(t, monitor.DefaultInterval, m.Scheduler().Interval())
}

func TestMonitor_ZeroIntervalMeansDefault(t *testing.T) {
	withDevice(t, zbdtesting.NewFakeDevice(testZoneSize, 0, 4))
	stubTerminal(t, true)
	m := captureDashboard(t)

	res := execute(t, "-i", "0", "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, 500*time.Millisecond, m.Scheduler().Interval())
}

func TestMonitor_ConfigFileAndEnv(t *testing.T) {
	withDevice(t, zbdtesting.NewFakeDevice(testZoneSize, 0, 200))
	stubTerminal(t, true)
	m := captureDashboard(t)

	path := filepath.Join(t.TempDir(), "zbdtop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 20\ninterval: 1000\ngrid:\n  default_rows: 4\n"), 0o644))
	t.Setenv("ZBDTOP_INTERVAL", "750")

	res := execute(t, "--config", path, "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, grid.Shape{Cols: 20, Rows: 10, VisibleRows: 4}, m.Layout().Shape())
	assert.Equal(t, 750*time.Millisecond, m.Scheduler().Interval(), "environment beats the file")
}

func TestMonitor_FlagBeatsConfigFile(t *testing.T) {
	withDevice(t, zbdtesting.NewFakeDevice(testZoneSize, 0, 200))
	stubTerminal(t, true)
	m := captureDashboard(t)

	path := filepath.Join(t.TempDir(), "zbdtop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 20\n"), 0o644))

	res := execute(t, "--config", path, "-w", "40", "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, 40, m.Layout().Shape().Cols)
}

func TestMonitor_NotATerminal(t *testing.T) {
	noDeviceIO(t)
	stubTerminal(t, false)

	res := execute(t, "/dev/nullb0")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "needs an interactive terminal")
	assert.Contains(t, res.stderr, "zbdtop zones /dev/nullb0")
}

func TestMonitor_DeviceErrors(t *testing.T) {
	stubTerminal(t, true)
	captureDashboard(t)

	t.Run("not zoned", func(t *testing.T) {
		withOpener(t, func(string) (zbd.Device, error) { return nil, zbd.ErrNotZoned })

		res := execute(t, "/dev/sda")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Open /dev/sda failed")
		assert.Contains(t, res.stderr, "zoned=none")
	})

	t.Run("block does not divide zone size", func(t *testing.T) {
		dev := zbdtesting.NewFakeDevice(testZoneSize, 0, 4)
		withDevice(t, dev)

		res := execute(t, "-b", "3000", "/dev/nullb0")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "Invalid block size 3000")
		assert.Equal(t, 1, dev.CloseCalls)
	})

	t.Run("initial listing fails", func(t *testing.T) {
		dev := zbdtesting.NewFakeDevice(testZoneSize, 0, 4)
		dev.FailReport = true
		withDevice(t, dev)

		res := execute(t, "/dev/nullb0")

		assert.Equal(t, 1, res.code)
		assert.Equal(t, 1, dev.CloseCalls, "session is closed after a failed listing")
	})
}

func TestMonitor_Verbose(t *testing.T) {
	withDevice(t, zbdtesting.NewFakeDevice(testZoneSize, 0, 4))
	stubTerminal(t, true)
	captureDashboard(t)

	var verbose bool
	var level zbd.LogLevel
	orig := runDashboard
	runDashboard = func(m monitor.Model, sess *session.Session) error {
		verbose = logger.Verbose()
		level = zbd.GetLogLevel()
		return orig(m, sess)
	}

	res := execute(t, "-v", "/dev/nullb0")

	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, verbose)
	assert.Equal(t, zbd.LogDebug, level)
}

func TestRedirectLog(t *testing.T) {
	t.Run("to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "zbdtop.log")

		restore, err := redirectLog(path)
		require.NoError(t, err)
		log.Print("refresh failed")
		restore()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "zbdtop")
		assert.Contains(t, string(data), "refresh failed")
		assert.Empty(t, log.Prefix())
	})

	t.Run("bad path", func(t *testing.T) {
		_, err := redirectLog(filepath.Join(t.TempDir(), "missing", "dir", "zbdtop.log"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot open log file")
	})

	t.Run("discard", func(t *testing.T) {
		restore, err := redirectLog("")
		require.NoError(t, err)
		defer restore()

		assert.Equal(t, io.Discard, log.Writer())
	})
}
