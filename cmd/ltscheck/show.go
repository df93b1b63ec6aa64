package main

import (
	"fmt"
	"strconv"

	"github.com/obentoo/ltscheck/internal/common/logger"
	"github.com/obentoo/ltscheck/internal/common/output"
	"github.com/obentoo/ltscheck/internal/lts"
	"github.com/spf13/cobra"
)

var showAll bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the recorded versions",
	Long:  `Print the release lines currently stored in the version record, without contacting any feed.`,
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&checkRecord, "record", "", "Version record file (overrides config)")
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Also print untracked fields of the record")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Files.Record
	if checkRecord != "" {
		path = checkRecord
	}

	logger.Debug("reading record %s", path)
	rec, err := lts.NewRecordStore(path).Load()
	if err != nil {
		return err
	}

	dotnet := ""
	if rec.DotnetLtsMajor != 0 {
		dotnet = strconv.Itoa(rec.DotnetLtsMajor)
	}

	fmt.Fprintln(output.Stdout, output.FormatField(lts.LabelDotnet, dotnet))
	fmt.Fprintln(output.Stdout, output.FormatField(lts.LabelPython, rec.PythonSupportedMinor))

	if showAll {
		for _, key := range rec.ExtraKeys() {
			raw, _ := rec.Extra(key)
			fmt.Fprintln(output.Stdout, output.FormatField(key, raw))
		}
	}
	return nil
}
