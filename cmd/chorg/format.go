package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"chorg/internal/executor"
	"chorg/internal/miner"
	"chorg/internal/storage"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// PlanMoveCLI is one planned move for display.
type PlanMoveCLI struct {
	Channel string `json:"channel"`
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Mute    bool   `json:"mute,omitempty"`
}

// PlanResponseCLI is the dry-run plan output.
type PlanResponseCLI struct {
	ChorgVersion  string        `json:"chorgVersion"`
	Mode          string        `json:"mode"`
	TotalChannels int           `json:"totalChannels"`
	Moves         []PlanMoveCLI `json:"moves"`
	MuteChannels  []string      `json:"muteChannels,omitempty"`
}

// ExecuteResponseCLI is the output of a --write run.
type ExecuteResponseCLI struct {
	ChorgVersion string                `json:"chorgVersion"`
	RunID        string                `json:"runId"`
	Applied      []executor.MoveResult `json:"applied"`
	Failed       []executor.MoveResult `json:"failed"`
	MutedCount   int                   `json:"mutedCount"`
	MuteFailed   []executor.MuteResult `json:"muteFailed,omitempty"`
	DurationMs   int64                 `json:"durationMs"`
}

// SuggestResponseCLI lists proposed starter rules.
type SuggestResponseCLI struct {
	ChorgVersion string             `json:"chorgVersion"`
	Suggestions  []miner.Suggestion `json:"suggestions"`
}

// SectionRowCLI is one section with its capacity state.
type SectionRowCLI struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Channels  int    `json:"channels"`
	Available int    `json:"available"`
}

// SectionsResponseCLI lists the workspace's sections.
type SectionsResponseCLI struct {
	ChorgVersion string          `json:"chorgVersion"`
	Sections     []SectionRowCLI `json:"sections"`
}

// RunsResponseCLI lists recent run history.
type RunsResponseCLI struct {
	ChorgVersion string        `json:"chorgVersion"`
	Runs         []storage.Run `json:"runs"`
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *PlanResponseCLI:
		return formatPlanHuman(v), nil
	case *ExecuteResponseCLI:
		return formatExecuteHuman(v), nil
	case *SuggestResponseCLI:
		return formatSuggestHuman(v), nil
	case *SectionsResponseCLI:
		return formatSectionsHuman(v), nil
	case *RunsResponseCLI:
		return formatRunsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatPlanHuman(resp *PlanResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan: %d move(s), %d mute(s) across %d channel(s)\n",
		len(resp.Moves), len(resp.MuteChannels), resp.TotalChannels)

	if len(resp.Moves) > 0 {
		b.WriteString("\nMoves:\n")
		for _, m := range resp.Moves {
			from := m.From
			if from == "" {
				from = "(unsectioned)"
			}
			fmt.Fprintf(&b, "  #%-30s %s -> %s", m.Channel, from, m.To)
			if m.Mute {
				b.WriteString("  [mute]")
			}
			b.WriteString("\n")
		}
	}

	if len(resp.MuteChannels) > 0 {
		b.WriteString("\nMute only:\n")
		for _, name := range resp.MuteChannels {
			fmt.Fprintf(&b, "  #%s\n", name)
		}
	}

	if resp.Mode == storage.ModePlan {
		b.WriteString("\nDry run - nothing was changed. Re-run with --write to apply.\n")
	}
	return b.String()
}

func formatExecuteHuman(resp *ExecuteResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Applied %d move(s), %d failed, %d muted (%dms)\n",
		len(resp.Applied), len(resp.Failed), resp.MutedCount, resp.DurationMs)

	if len(resp.Failed) > 0 {
		b.WriteString("\nFailed moves:\n")
		for _, f := range resp.Failed {
			fmt.Fprintf(&b, "  #%s -> %s: %s\n", f.ChannelName, f.ToSectionID, f.Error)
		}
	}
	if len(resp.MuteFailed) > 0 {
		b.WriteString("\nFailed mutes:\n")
		for _, f := range resp.MuteFailed {
			fmt.Fprintf(&b, "  %s: %s\n", f.ChannelID, f.Error)
		}
	}

	fmt.Fprintf(&b, "\nRun ID: %s\n", resp.RunID)
	return b.String()
}

func formatSuggestHuman(resp *SuggestResponseCLI) string {
	if len(resp.Suggestions) == 0 {
		return "No recurring name patterns found in your current sections.\n"
	}

	var b strings.Builder
	b.WriteString("Suggested rules (review before saving):\n\n")
	for _, s := range resp.Suggestions {
		fmt.Fprintf(&b, "  %-7s %-22q -> %-20s (%d channels)\n",
			s.Kind, s.Pattern, s.SectionName, s.Count)
	}
	b.WriteString("\nSave a starter rules file with: chorg suggest --out rules.json\n")
	return b.String()
}

func formatSectionsHuman(resp *SectionsResponseCLI) string {
	if len(resp.Sections) == 0 {
		return "No standard sidebar sections found.\n"
	}

	var b strings.Builder
	b.WriteString("Sections:\n")
	for _, s := range resp.Sections {
		fmt.Fprintf(&b, "  %-30s %4d channel(s), %3d slot(s) free\n",
			s.Name, s.Channels, s.Available)
	}
	return b.String()
}

func formatRunsHuman(resp *RunsResponseCLI) string {
	if len(resp.Runs) == 0 {
		return "No recorded runs.\n"
	}

	var b strings.Builder
	b.WriteString("Recent runs:\n")
	for _, r := range resp.Runs {
		fmt.Fprintf(&b, "  %s  %-5s  planned=%d applied=%d failed=%d muted=%d  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Mode,
			r.Planned, r.Applied, r.Failed, r.Muted, r.ID)
	}
	return b.String()
}
