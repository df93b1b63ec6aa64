package main

import (
	"fmt"
	"os"

	"github.com/obentoo/ltscheck/internal/common/config"
	"github.com/obentoo/ltscheck/internal/common/logger"
	"github.com/obentoo/ltscheck/internal/common/output"
	"github.com/obentoo/ltscheck/internal/common/version"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	noColor    bool
	forceColor bool
	logFile    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "ltscheck",
	Short: "Track the latest .NET LTS and supported Python release lines",
	Long: `Check the .NET release index and the Python end-of-life feed for newer
supported release lines, update the version record when one appears, and
write a Markdown report of what changed.

Examples:
  ltscheck                      Run the check with defaults or ltscheck.toml
  ltscheck --dry-run            Resolve and compare without writing files
  ltscheck --record v.json      Use a different record file
  ltscheck show                 Print the recorded versions`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Configure logging based on flags
		logger.Default().SetOutput(cmd.ErrOrStderr())
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if forceColor {
			output.ForceColor()
		}
		if noColor {
			output.NoColor()
		}
		if logFile {
			path, err := logger.EnableFileLogging()
			if err != nil {
				return err
			}
			logger.Debug("logging to %s", path)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runCheck,
}

func init() {
	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&forceColor, "color", false, "Force colored output even when not a terminal")
	rootCmd.PersistentFlags().BoolVar(&logFile, "log-file", false, "Also append log entries to the state log file")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.toml or .yaml); defaults to ltscheck.toml/yaml in the working directory")
}

// loadConfig reads the config selected by --config
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
}
