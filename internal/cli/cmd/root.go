package cmd

import (
	"fmt"
	"os"

	"github.com/berrythewa/clipman/internal/common"
	"github.com/berrythewa/clipman/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	// commands that run the engine log with the configured settings
	annotationDaemon = "clipman/daemon"

	// commands that manage the config file load it themselves
	annotationNoConfig = "clipman/no-config"
)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clipman",
		Short: "A clipboard manager with history, favorites and groups",
		Long: `Clipman keeps a bounded history of what you copy:
  • Text and images, tagged by content (links, code, dates, paths...)
  • Favorites and named groups that survive clearing the history
  • Search and tag filters over the whole history

Run 'clipman daemon' to start watching the clipboard; the other commands
talk to the running daemon.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is <user config dir>/clipman/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	flags.BoolVar(&useJSON, "json", false, "output in JSON format")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newDaemonCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newTagsCmd(),
		newStatsCmd(),
		newCopyCmd(),
		newDeleteCmd(),
		newFavoriteCmd(),
		newTagCmd(),
		newClearCmd(),
		newGroupCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger. Client commands log
// warnings and errors to stderr only, unless asked for more.
func setup(cmd *cobra.Command) error {
	logger = zap.NewNop()
	if hasAnnotation(cmd, annotationNoConfig) {
		return nil
	}

	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Log
	if !hasAnnotation(cmd, annotationDaemon) {
		logCfg.Level = "warn"
		logCfg.Format = "console"
		logCfg.File = ""
	}
	switch {
	case logLevel != "":
		logCfg.Level = logLevel
	case verbose:
		logCfg.Level = "debug"
	case quiet:
		logCfg.Level = "error"
	}

	logger, err = common.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration loaded",
		zap.String("config", configFile),
		zap.String("data_dir", cfg.Storage.Dir),
		zap.String("socket", cfg.SocketPath))
	return nil
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[key]; ok {
			return true
		}
	}
	return false
}
