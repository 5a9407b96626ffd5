package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/zbdtop/internal/config"
	"github.com/rileyhilliard/zbdtop/internal/logger"
	"github.com/rileyhilliard/zbdtop/internal/session"
	"github.com/rileyhilliard/zbdtop/internal/zbd"
	"github.com/spf13/cobra"
)

// openDevice opens zoned devices. Tests swap in a fake.
var openDevice zbd.Opener = zbd.Open

// loadConfig merges file, environment and flags, validates the result and
// applies the process-wide settings. Nothing touches the device before it
// returns.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")

	path, err := config.Find(explicit)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	applySettings(cfg)
	return cfg, nil
}

func applySettings(cfg *config.Config) {
	logger.SetVerbose(cfg.Verbose)
	if cfg.Verbose {
		zbd.SetLogLevel(zbd.LogDebug)
	}
	if cfg.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// openZones opens device in the configured display unit and lists every
// zone. The session is closed again if the listing fails.
func openZones(device string, cfg *config.Config) (*session.Session, error) {
	sess, err := session.Open(device, session.Options{
		Divisor: cfg.Divisor(),
		Opener:  openDevice,
		Logger:  logger.NewEnvLogger("[session]"),
	})
	if err != nil {
		return nil, err
	}

	if _, err := sess.ListAllZones(); err != nil {
		_ = sess.Close()
		return nil, err
	}
	return sess, nil
}
