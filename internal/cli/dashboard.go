package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/bma-d/tasktabs/internal/config"
	"github.com/bma-d/tasktabs/internal/input"
	"github.com/bma-d/tasktabs/internal/logging"
	"github.com/bma-d/tasktabs/internal/report"
	"github.com/bma-d/tasktabs/internal/session"
	"github.com/bma-d/tasktabs/internal/taskwarrior"
	"github.com/bma-d/tasktabs/internal/view"
)

var newScreenFn = tcell.NewScreen

var newFetcherFn = func(s config.Settings) report.Fetcher {
	return taskwarrior.New(s.TaskBinary, s.FetchTimeout)
}

func newStore(s config.Settings) *report.Store {
	return report.NewStore(
		report.WithPolicy(s.Policy),
		report.WithWorkers(s.Workers),
		report.WithDirectives(s.Directives),
	)
}

// runDashboard is the root command: it owns the terminal until the user
// quits.
func runDashboard(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if flagLogFile == "" {
		// The screen owns stderr from here on.
		logging.SetOutput(io.Discard)
	}
	logger := logging.New("dashboard")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	screen, err := newScreenFn()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()
	if settings.Mouse {
		screen.EnableMouse(tcell.MouseButtonEvents)
	}

	logger.Info("starting",
		"task", settings.TaskBinary,
		"interval", settings.Interval,
		"policy", settings.Policy,
		"tab", settings.InitialTab,
	)
	poller := input.NewPoller(screen)
	defer poller.Close()

	sess, err := session.New(ctx, session.Options{
		Fetcher:    newFetcherFn(settings),
		Surface:    view.NewScreen(screen),
		Input:      poller,
		Store:      newStore(settings),
		InitialTab: settings.InitialTab,
		Interval:   settings.Interval,
		Logger:     logging.New("session"),
	})
	if err != nil {
		return err
	}
	return sess.Run(ctx)
}
