package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/zbdtop/internal/grid"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/session"
	zbdtesting "github.com/rileyhilliard/zbdtop/internal/zbd/testing"
	"github.com/stretchr/testify/require"
)

const testZoneSize = 1 << 20

func init() {
	// Plain output so views can be compared as text
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fixture struct {
	dev    *zbdtesting.FakeDevice
	sess   *session.Session
	layout *grid.Layout
	model  Model
}

func newFixture(t *testing.T, nrConv, nrSeq, cols, rows int, opts Options) *fixture {
	t.Helper()

	dev := zbdtesting.NewFakeDevice(testZoneSize, nrConv, nrSeq)
	sess, err := session.Open("/dev/nullb0", session.Options{Opener: dev.Opener(), Logger: logger.Noop()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	_, err = sess.ListAllZones()
	require.NoError(t, err)
	dev.ResetCalls()

	layout := grid.New(sess.Zones(), grid.Compute(sess.NrZones(), cols, rows, grid.DefaultDefaults()))
	return &fixture{
		dev:    dev,
		sess:   sess,
		layout: layout,
		model:  NewModel(sess, layout, opts),
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
