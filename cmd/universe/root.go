package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"ml-universe/internal/config"
	"ml-universe/internal/logger"
)

var (
	configPath string
	logPath    string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "universe",
		Short: "universe: an interactive ML portfolio in 3D",
		Long: brand.Sprint("ML Universe") + ": six machine-learning diagrams and five markers in one scene\n" +
			subtle.Sprint("Run the window, or inspect topology, frames and content from the terminal"),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigPath, "config file (.yaml or .toml)")
	root.PersistentFlags().StringVar(&logPath, "log", logger.LogFilePath, `log file, "-" to disable`)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		runCmd(),
		framesCmd(),
		topologyCmd(),
		contentCmd(),
		configCmd(),
	)
	return root
}

// openLogger builds the process logger. A log file that cannot be opened is reported and
// logging continues without it.
func openLogger(console bool) *logger.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	log, err := logger.New(logger.Options{Path: logPath, Level: level, Console: console || verbose})
	if err != nil {
		warn.Printf("universe: log file unavailable: %v\n", err)
	}
	return log
}
