package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"chorg/internal/logging"
	"chorg/internal/miner"
	"chorg/internal/rules"
	"chorg/internal/version"
)

var (
	suggestFormat string
	suggestOut    string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Mine your sections for name patterns and propose starter rules",
	Long: `Look at the channels already in each sidebar section, mine their names
for recurring prefixes and suffixes, and propose rules that would keep
similar channels flowing into the same section. The output is advisory;
nothing is moved.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestFormat, "format", "human", "Output format (json, human)")
	suggestCmd.Flags().StringVar(&suggestOut, "out", "", "Write a starter rules file (.json or .toml)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
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

	resp := buildSuggestResponse(snap)

	if suggestOut != "" {
		if err := writeStarterRules(suggestOut, resp.Suggestions); err != nil {
			return err
		}
		fmt.Printf("Wrote %d starter rule(s) to %s\n", len(resp.Suggestions), suggestOut)
		return nil
	}

	return printResponse(resp, OutputFormat(suggestFormat))
}

// buildSuggestResponse mines the snapshot for suggestions.
func buildSuggestResponse(snap *snapshot) *SuggestResponseCLI {
	return &SuggestResponseCLI{
		ChorgVersion: version.Version,
		Suggestions:  miner.Suggest(snap.sections, snap.names),
	}
}

// starterRulesDocument wraps specs for TOML output as [[rules]] tables.
type starterRulesDocument struct {
	Rules []rules.Spec `toml:"rules"`
}

// writeStarterRules writes suggestions as a rules file, format by extension.
func writeStarterRules(path string, suggestions []miner.Suggestion) error {
	specs := make([]rules.Spec, 0, len(suggestions))
	for _, s := range suggestions {
		specs = append(specs, s.Spec())
	}

	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create rules file: %w", err)
		}
		enc := toml.NewEncoder(f)
		if err := enc.Encode(starterRulesDocument{Rules: specs}); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode rules: %w", err)
		}
		return f.Close()
	}

	data, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}
