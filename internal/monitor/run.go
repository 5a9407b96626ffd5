package monitor

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run arms the signal bridge, runs the dashboard until it quits, then
// closes closer exactly once. Bubble Tea's own signal handler is disabled so
// termination signals only reach the loop through the bridge.
func Run(m Model, closer io.Closer, opts ...tea.ProgramOption) (Model, error) {
	if m.bridge != nil {
		m.bridge.Arm()
		defer m.bridge.Stop()
	}

	opts = append([]tea.ProgramOption{tea.WithoutSignalHandler()}, opts...)
	p := tea.NewProgram(m, opts...)
	final, runErr := p.Run()

	closeErr := closer.Close()
	if closeErr != nil {
		m.log.Error("closing %s: %v", m.src.Path(), closeErr)
	}

	if fm, ok := final.(Model); ok {
		m = fm
	}
	if runErr != nil {
		return m, runErr
	}
	return m, closeErr
}
