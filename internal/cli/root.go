package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bma-d/tasktabs/internal/config"
	"github.com/bma-d/tasktabs/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagLogFile string
)

// Settings flags; applied over the config file only when set.
var (
	flagInterval     = config.Defaults().Interval.Duration
	flagFetchTimeout = config.Defaults().FetchTimeout.Duration
	flagWorkers      = config.Defaults().Workers
	flagTab          string
	flagTaskBinary   string
	flagPolicy       string
	flagNoMouse      bool
)

// closeLog releases the --log-file handle opened in PersistentPreRunE.
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "tasktabs",
	Short: "Tabbed terminal dashboard for Taskwarrior reports",
	Long: `tasktabs shows several Taskwarrior reports as tabs in the terminal and
refreshes them whenever the keyboard has been idle for the refresh interval.

Switch tabs with h/l or the arrow keys, or click a tab. Press q or Esc to quit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runDashboard,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("verbose") && os.Getenv("TASKTABS_VERBOSE") != "" {
			flagVerbose = true
		}
		logging.Setup(flagVerbose, flagQuiet, os.Getenv("TASKTABS_LOG_FORMAT") == "json")
		if flagLogFile != "" {
			w, closeFn, err := logging.OpenFile(flagLogFile)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			logging.SetOutput(w)
			closeLog = closeFn
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging (env: TASKTABS_VERBOSE)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	pf.StringVar(&flagConfig, "config", "", "Path to config.toml (default: user config dir)")
	pf.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	bindSettingsFlags(pf)
}

func bindSettingsFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&flagInterval, "interval", flagInterval, "Idle time before reports are refreshed")
	fs.DurationVar(&flagFetchTimeout, "fetch-timeout", flagFetchTimeout, "Timeout for each task invocation")
	fs.IntVar(&flagWorkers, "workers", flagWorkers, "Maximum concurrent task invocations")
	fs.StringVar(&flagTab, "tab", "", "Tab selected at startup (due, active, inbox)")
	fs.StringVar(&flagTaskBinary, "task-binary", "", "Taskwarrior executable")
	fs.StringVar(&flagPolicy, "policy", "", "Refresh failure policy: per-tab or all-or-nothing")
	fs.BoolVar(&flagNoMouse, "no-mouse", false, "Disable mouse support")
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("interval") {
		cfg.Interval.Duration = flagInterval
	}
	if fs.Changed("fetch-timeout") {
		cfg.FetchTimeout.Duration = flagFetchTimeout
	}
	if fs.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if fs.Changed("tab") {
		cfg.InitialTab = flagTab
	}
	if fs.Changed("task-binary") {
		cfg.TaskBinary = flagTaskBinary
	}
	if fs.Changed("policy") {
		cfg.RefreshPolicy = flagPolicy
	}
	if fs.Changed("no-mouse") {
		cfg.Mouse = !flagNoMouse
	}
}

// loadSettings reads the config file and overlays command line flags.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	logger := logging.New("config")
	path, required := flagConfig, flagConfig != ""
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			logger.Debug("no default config path", "error", err)
		}
	}
	cfg, unknown, err := config.Load(path, required)
	if err != nil {
		return config.Settings{}, err
	}
	for _, key := range unknown {
		logger.Warn("ignoring unknown config key", "path", path, "key", key)
	}
	applyFlags(cmd.Flags(), &cfg)
	return cfg.Resolve()
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	defer func() { _ = closeLog() }()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "tasktabs:", err)
		return 1
	}
	return 0
}
