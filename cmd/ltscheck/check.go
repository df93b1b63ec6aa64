package main

import (
	"github.com/obentoo/ltscheck/internal/common/config"
	"github.com/obentoo/ltscheck/internal/common/logger"
	"github.com/obentoo/ltscheck/internal/common/output"
	"github.com/obentoo/ltscheck/internal/lts"
	"github.com/spf13/cobra"
)

var (
	// checkRecord overrides the record file path
	checkRecord string
	// checkReport overrides the report file path
	checkReport string
	// checkDryRun skips all file writes
	checkDryRun bool
)

func init() {
	rootCmd.Flags().StringVar(&checkRecord, "record", "", "Version record file (overrides config)")
	rootCmd.Flags().StringVar(&checkReport, "report", "", "Markdown report file (overrides config)")
	rootCmd.Flags().BoolVar(&checkDryRun, "dry-run", false, "Resolve and compare without writing any file")
}

// runCheck handles the root command
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkRecord != "" {
		cfg.Files.Record = checkRecord
	}
	if checkReport != "" {
		cfg.Files.Report = checkReport
	}

	checker, err := newChecker(cfg)
	if err != nil {
		return err
	}

	result, err := checker.Run(cmd.Context())
	if err != nil {
		return err
	}

	displayResult(checker, result)
	return nil
}

// newChecker builds a checker from configuration
func newChecker(cfg *config.Config) (*lts.Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}

	logger.Debug("record: %s, report: %s", cfg.Files.Record, cfg.Files.Report)

	return lts.NewChecker(cfg.Files.Record, cfg.Files.Report,
		lts.WithFeedClient(lts.NewFeedClient(clientCfg)),
		lts.WithDotnetIndexURL(cfg.Feeds.DotnetIndexURL),
		lts.WithPythonFeedURLs(cfg.Feeds.PythonURLs),
		lts.WithDryRun(checkDryRun),
	), nil
}

// displayResult prints a summary of the run
func displayResult(checker *lts.Checker, result *lts.Result) {
	if quiet {
		return
	}

	output.Section("LTS Check Results")

	if !result.HasChanges() {
		output.PrintSuccess(lts.ReportNoChanges)
	}
	for _, c := range result.Changes {
		output.PrintInfo("%s", output.FormatChange(c.Field, c.Old, c.New))
	}

	switch {
	case checkDryRun:
		output.PrintWarning("Dry run: no files written")
	case result.RecordWritten:
		output.PrintSuccess("Updated %s", checker.Store().Path())
	}
	if result.ReportWritten {
		output.Dim.Fprintf(output.Stdout, "  report: %s\n", checker.ReportPath())
	}
}
