package cli

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
	zbdtesting "github.com/rileyhilliard/zbdtop/internal/zbd/testing"
)

const testZoneSize = 1 << 20

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type result struct {
	stdout string
	stderr string
	code   int
}

// execute runs a fresh command tree with args, keeping the user's config
// and log settings out of the way.
func execute(t *testing.T, args ...string) result {
	t.Helper()
	isolate(t)

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	code := run(cmd, args, &errOut)
	return result{stdout: out.String(), stderr: errOut.String(), code: code}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		logger.SetVerbose(false)
		zbd.SetLogLevel(zbd.LogWarning)
	})
}

// withDevice routes every device open to dev.
func withDevice(t *testing.T, dev *zbdtesting.FakeDevice) {
	t.Helper()
	withOpener(t, dev.Opener())
}

func withOpener(t *testing.T, opener zbd.Opener) {
	t.Helper()
	orig := openDevice
	openDevice = opener
	t.Cleanup(func() { openDevice = orig })
}

// noDeviceIO fails the test if anything tries to open a device.
func noDeviceIO(t *testing.T) {
	t.Helper()
	withOpener(t, func(path string) (zbd.Device, error) {
		t.Errorf("unexpected open of %s", path)
		return nil, zbd.ErrNotSupported
	})
}
