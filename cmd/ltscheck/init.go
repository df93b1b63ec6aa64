package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/obentoo/ltscheck/internal/common/config"
	"github.com/obentoo/ltscheck/internal/common/output"
	"github.com/obentoo/ltscheck/internal/lts"
	"github.com/spf13/cobra"
)

var (
	// initFormat selects the config file format
	initFormat string
	// initForce overwrites an existing config file
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file and an empty version record",
	Long: `Write ltscheck.toml (or ltscheck.yaml) with the default paths and feed
endpoints, and create the version record file if it does not exist yet.

Examples:
  ltscheck init                 Write ltscheck.toml
  ltscheck init --format yaml   Write ltscheck.yaml
  ltscheck init --force         Overwrite an existing config file`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initFormat, "format", "toml", "Config format: toml or yaml")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	var path string
	switch initFormat {
	case "toml":
		path = "ltscheck.toml"
	case "yaml":
		path = "ltscheck.yaml"
	default:
		return fmt.Errorf("unknown format %q: use toml or yaml", initFormat)
	}

	cfg := config.Default()
	existing := config.FindConfigPath(".")
	if existing != "" && config.FormatOf(existing) == initFormat {
		path = existing
	}
	if existing != "" && initForce && existing != path {
		// The existing file would still win discovery over the new one
		return fmt.Errorf("config %s already exists in another format: remove it or use --format %s", existing, config.FormatOf(existing))
	}

	if existing != "" && !initForce {
		output.PrintWarning("Config already exists at: %s (use --force to overwrite)", existing)
		loaded, err := config.LoadFrom(existing)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		output.PrintSuccess("Configuration saved to: %s", path)
	}

	return seedRecord(cfg.Files.Record)
}

// seedRecord writes an empty version record when none exists at path
func seedRecord(path string) error {
	store := lts.NewRecordStore(path)
	if _, err := os.Stat(store.Path()); !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := store.Save(lts.NewVersionRecord(0, "")); err != nil {
		return err
	}
	output.PrintSuccess("Created empty version record: %s", store.Path())
	return nil
}
