package main

import (
	"github.com/spf13/cobra"

	"chorg/internal/config"
	"chorg/internal/logging"
	"chorg/internal/storage"
	"chorg/internal/version"
)

var (
	runsFormat string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent organize runs from local history",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsFormat, "format", "human", "Output format (json, human)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(logging.NewDiscardLogger())
	logger := newLogger(cfg)

	db, err := storage.Open(config.HomeDir(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.ListRuns(runsLimit)
	if err != nil {
		return err
	}

	resp := &RunsResponseCLI{
		ChorgVersion: version.Version,
		Runs:         runs,
	}
	return printResponse(resp, OutputFormat(runsFormat))
}
