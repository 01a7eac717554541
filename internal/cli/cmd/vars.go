package cmd

import (
	"github.com/berrythewa/clipman/internal/config"
	"go.uber.org/zap"
)

// Shared state, set up by the root command before any subcommand runs
var (
	cfg    *config.Config
	logger = zap.NewNop()

	// Global flags
	configFile string
	logLevel   string
	verbose    bool
	quiet      bool
	useJSON    bool
	noColor    bool
)
