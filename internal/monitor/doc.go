// Package monitor implements the live zone dashboard.
//
// The dashboard shows every zone of one zoned block device as a cell in a
// grid, colored by zone condition and filled in proportion to the write
// pointer. Only the rows on screen are re-read from the device on each tick.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: the session view, grid layout, scroll position and selection
//   - Update: processes key presses, refresh ticks and termination signals
//   - View: renders the header, visible grid rows, zone detail and legend
//
// # Message Flow
//
//  1. tickMsg fires at the configured interval (default 500ms)
//  2. Update refreshes the visible window synchronously through the Scheduler
//  3. View re-renders from the updated zone array
//
// A failed refresh keeps the previous data on screen, marks the header stale
// and is retried on the next tick. Scrolling refreshes the new window at once.
//
// Termination signals arrive through a sigbridge.Bridge as signalMsg. The
// model then quits and Run closes the device session.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	arrows/hjkl - Move the selected zone
//	PgUp/PgDn   - Scroll a page
//	Home/End    - First / last zone
//	?           - Toggle help overlay
package monitor
