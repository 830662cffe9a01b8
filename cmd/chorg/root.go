package main

import (
	"github.com/spf13/cobra"

	"chorg/internal/version"
)

var (
	// verboseFlag raises the log level to debug
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "chorg",
	Short: "chorg - Slack channel organizer",
	Long: `chorg classifies your Slack channels against an ordered list of rules and
moves each matched channel into its sidebar section, spilling over into
numbered sibling sections when one fills up. Without a rules file it mines
your current sections for recurring name patterns and proposes starter rules.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("chorg version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
}
