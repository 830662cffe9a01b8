package main

import (
	"github.com/spf13/cobra"

	"chorg/internal/logging"
	"chorg/internal/version"
)

var sectionsFormat string

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List sidebar sections with membership and free capacity",
	RunE:  runSections,
}

func init() {
	sectionsCmd.Flags().StringVar(&sectionsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(logging.NewDiscardLogger())
	logger := newLogger(cfg)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(cmd.Context(), client, logger)
	if err != nil {
		return err
	}

	resp := &SectionsResponseCLI{
		ChorgVersion: version.Version,
		Sections:     []SectionRowCLI{},
	}
	for _, s := range snap.sections {
		resp.Sections = append(resp.Sections, SectionRowCLI{
			ID:        s.ID,
			Name:      s.Name,
			Channels:  len(s.ChannelIDs),
			Available: s.Available(),
		})
	}

	return printResponse(resp, OutputFormat(sectionsFormat))
}
