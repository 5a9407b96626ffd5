package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/zbdtop/internal/logger"
)

// DefaultInterval is the refresh period used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Refresher re-reads a window of zones in place.
type Refresher interface {
	RefreshWindow(start, count int) (int, error)
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// Scheduler drives periodic window refreshes from the event loop. It keeps
// no zone data; it only decides when to call the refresher and records the
// outcome.
type Scheduler struct {
	src      Refresher
	interval time.Duration
	log      logger.Logger
	onChange func(start, count int)

	lastRefresh time.Time
	lastErr     error
	failures    int // consecutive failed ticks
	refreshes   int
}

// NewScheduler creates a scheduler ticking every interval. A non-positive
// interval uses DefaultInterval.
func NewScheduler(src Refresher, interval time.Duration, log logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Scheduler{
		src:      src,
		interval: interval,
		log:      log,
	}
}

// OnChange registers fn to be called after every successful refresh with
// the refreshed range.
func (s *Scheduler) OnChange(fn func(start, count int)) {
	s.onChange = fn
}

// Interval returns the refresh period. It never changes after creation.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Next returns the command that delivers the next tick.
func (s *Scheduler) Next() tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Refresh refreshes [start, start+count) synchronously. A failure is logged
// and recorded but never returned; the previous data stays in place and the
// next tick retries at the same interval.
func (s *Scheduler) Refresh(start, count int) bool {
	n, err := s.src.RefreshWindow(start, count)
	if err != nil {
		s.failures++
		s.lastErr = err
		s.log.Warn("refresh of zones %d+%d failed (%d in a row): %v", start, count, s.failures, err)
		return false
	}

	s.failures = 0
	s.lastErr = nil
	s.lastRefresh = time.Now()
	s.refreshes++
	if s.onChange != nil {
		s.onChange(start, n)
	}
	return true
}

// Stale reports whether the most recent refresh failed.
func (s *Scheduler) Stale() bool {
	return s.lastErr != nil
}

// LastError returns the error from the most recent refresh, if it failed.
func (s *Scheduler) LastError() error {
	return s.lastErr
}

// Failures returns the number of consecutive failed refreshes.
func (s *Scheduler) Failures() int {
	return s.failures
}

// Refreshes returns the number of successful refreshes.
func (s *Scheduler) Refreshes() int {
	return s.refreshes
}

// LastRefresh returns when the last successful refresh finished.
func (s *Scheduler) LastRefresh() time.Time {
	return s.lastRefresh
}
