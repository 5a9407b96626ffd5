package monitor

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/zbdtop/internal/grid"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/sigbridge"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
)

// Source is the read side of a device session plus window refresh.
type Source interface {
	Refresher
	Path() string
	Info() zbd.Info
	Divisor() uint64
	Zones() []zbd.Zone
	NrConvZones() int
	NrSeqZones() int
}

// Options configures the dashboard model.
type Options struct {
	// Interval is the refresh period (0 = DefaultInterval).
	Interval time.Duration

	// Bridge delivers termination signals into the loop. May be nil.
	Bridge *sigbridge.Bridge

	Logger logger.Logger
}

// Model is the Bubble Tea model for the zone dashboard.
type Model struct {
	src    Source
	layout *grid.Layout
	sched  *Scheduler
	bridge *sigbridge.Bridge
	log    logger.Logger

	keys KeyMap
	help help.Model

	topRow     int // first visible grid row
	selected   int // selected zone number
	generation int // bumped after every successful refresh

	width    int
	height   int
	quitting bool
	showHelp bool
	signal   os.Signal // termination signal that ended the loop, if any
}

// signalMsg carries a termination token from the signal bridge.
type signalMsg struct {
	sig os.Signal
}

// NewModel creates a dashboard over src laid out by layout. The zones must
// already be listed.
func NewModel(src Source, layout *grid.Layout, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	return Model{
		src:    src,
		layout: layout,
		sched:  NewScheduler(src, opts.Interval, opts.Logger),
		bridge: opts.Bridge,
		log:    opts.Logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init starts the refresh timer and the signal listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sched.Next(),
		m.waitSignalCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signalMsg:
		if m.bridge != nil && !m.bridge.Observe() {
			m.log.Debug("signal %v while already terminating", msg.sig)
		}
		m.log.Info("received %v, exiting", msg.sig)
		m.signal = msg.sig
		m.quitting = true
		return m, tea.Quit

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.refresh()
		return m, m.sched.Next()

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// waitSignalCmd blocks on the bridge for one token. It yields nil once the
// bridge is stopped.
func (m Model) waitSignalCmd() tea.Cmd {
	if m.bridge == nil {
		return nil
	}
	tokens := m.bridge.Tokens()
	return func() tea.Msg {
		sig, ok := <-tokens
		if !ok {
			return nil
		}
		return signalMsg{sig: sig}
	}
}

// refresh re-reads the visible window. It runs inside Update so there is
// only ever one writer to the zone array.
func (m *Model) refresh() {
	start, count := m.layout.Window(m.topRow)
	if count == 0 {
		return
	}
	if m.sched.Refresh(start, count) {
		m.generation++
	}
}

// moveSelection moves the selected zone by delta, scrolling the window to
// keep it visible. Scrolling refreshes the newly exposed window at once.
func (m *Model) moveSelection(delta int) {
	n := m.layout.NrZones()
	if n == 0 {
		return
	}

	sel := m.selected + delta
	if sel < 0 {
		sel = 0
	}
	if sel >= n {
		sel = n - 1
	}
	m.selected = sel

	row := m.layout.RowOf(sel)
	top := m.topRow
	visible := m.layout.Shape().VisibleRows
	if row < top {
		top = row
	} else if row >= top+visible {
		top = row - visible + 1
	}
	top = m.layout.ClampTopRow(top)

	if top != m.topRow {
		m.topRow = top
		m.refresh()
	}
}

// Scheduler returns the refresh scheduler.
func (m Model) Scheduler() *Scheduler { return m.sched }

// Layout returns the grid the dashboard draws.
func (m Model) Layout() *grid.Layout { return m.layout }

// Selected returns the selected zone number.
func (m Model) Selected() int { return m.selected }

// TopRow returns the first visible grid row.
func (m Model) TopRow() int { return m.topRow }

// Generation returns how many successful refreshes the view has seen.
func (m Model) Generation() int { return m.generation }

// Signal returns the termination signal that ended the loop, or nil.
func (m Model) Signal() os.Signal { return m.signal }

// SelectedZone returns the selected zone, or nil when there are no zones.
func (m Model) SelectedZone() *zbd.Zone {
	_, row, col, ok := m.layout.Map(m.selected)
	if !ok {
		return nil
	}
	return m.layout.At(row, col).Zone()
}
