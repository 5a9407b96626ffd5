package cli

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/zbdtop/internal/errors"
	"github.com/rileyhilliard/zbdtop/internal/grid"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/monitor"
	"github.com/rileyhilliard/zbdtop/internal/session"
	"github.com/rileyhilliard/zbdtop/internal/sigbridge"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	stdoutIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}

	// runDashboard owns the terminal until the loop ends and closes sess.
	runDashboard = func(m monitor.Model, sess *session.Session) error {
		_, err := monitor.Run(m, sess, tea.WithAltScreen())
		return err
	}
)

// monitorCommand starts the zone dashboard on device.
func monitorCommand(cmd *cobra.Command, device string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if !stdoutIsTerminal() {
		return errors.New(errors.ErrConfig,
			"zbdtop needs an interactive terminal",
			"Use 'zbdtop zones "+device+"' for a one-shot listing.")
	}

	restore, err := redirectLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer restore()

	sess, err := openZones(device, cfg)
	if err != nil {
		return err
	}

	layout := grid.New(sess.Zones(),
		grid.Compute(sess.NrZones(), cfg.Columns, cfg.Rows, cfg.GridDefaults()))

	model := monitor.NewModel(sess, layout, monitor.Options{
		Interval: cfg.RefreshInterval(),
		Bridge:   sigbridge.New(),
		Logger:   logger.NewEnvLogger("[monitor]"),
	})

	return runDashboard(model, sess)
}

// redirectLog sends the standard logger to path, or discards it when path
// is empty, for as long as the dashboard owns the terminal.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(path, "zbdtop")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file "+path,
			"Check the directory exists and is writable.")
	}
	return func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		_ = f.Close()
	}, nil
}
