package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"chorg/internal/config"
	"chorg/internal/executor"
	"chorg/internal/export"
	"chorg/internal/logging"
	"chorg/internal/planner"
	"chorg/internal/ratelimit"
	"chorg/internal/rules"
	"chorg/internal/storage"
	"chorg/internal/version"
)

var (
	organizeWrite      bool
	organizeFormat     string
	organizeReportPath string
)

var organizeCmd = &cobra.Command{
	Use:   "organize [rules-file]",
	Short: "Plan and apply channel moves from a rules file",
	Long: `Classify every channel against the rules file (JSON, YAML or TOML) and
move matched channels into their sidebar sections.

Without --write this is a dry run: the plan is printed and nothing is
changed in the workspace. Without a rules file, chorg mines your current
sections for recurring name patterns and prints suggested starter rules
instead of planning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().BoolVar(&organizeWrite, "write", false, "Apply the plan to the workspace")
	organizeCmd.Flags().StringVar(&organizeFormat, "format", "human", "Output format (json, human)")
	organizeCmd.Flags().StringVar(&organizeReportPath, "report", "", "Write the run report to this file (.gz compresses)")
	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(logging.NewDiscardLogger())
	logger := newLogger(cfg)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	snap, err := loadSnapshot(ctx, client, logger)
	if err != nil {
		return err
	}

	// No rules file: fall through to the suggestion path.
	if len(args) == 0 {
		resp := buildSuggestResponse(snap)
		return printResponse(resp, OutputFormat(organizeFormat))
	}

	ruleSet, err := rules.LoadFile(args[0])
	if err != nil {
		return err
	}
	ruleSet, err = rules.Resolve(ruleSet, snap.sections)
	if err != nil {
		return err
	}

	plan := planner.Build(snap.channels, ruleSet, snap.sections)
	moves := planner.Distribute(plan.Moves, snap.sections)

	if !organizeWrite {
		resp := buildPlanResponse(snap, moves, plan.MuteChannelIDs)
		recordPlanRun(cfg, logger, resp)
		return printResponse(resp, OutputFormat(organizeFormat))
	}

	limiter := ratelimit.New(cfg.RateLimit.Requests, msDuration(cfg.RateLimit.IntervalMs))
	exec := executor.New(client, limiter, logger)

	report, execErr := exec.Apply(ctx, moves, plan.MuteChannelIDs)

	run := storage.NewRun(storage.ModeWrite)
	run.Planned = len(moves)
	run.Applied = len(report.Applied)
	run.Failed = len(report.Failed)
	run.Muted = len(report.Muted)
	if data, err := json.Marshal(report); err == nil {
		run.ReportJSON = string(data)
	}
	saveRun(cfg, logger, run)

	if organizeReportPath != "" {
		if err := export.WriteReport(organizeReportPath, report); err != nil {
			logger.Warn("Failed to write report file", map[string]interface{}{
				"path":  organizeReportPath,
				"error": err.Error(),
			})
		}
	}

	resp := &ExecuteResponseCLI{
		ChorgVersion: version.Version,
		RunID:        run.ID,
		Applied:      report.Applied,
		Failed:       report.Failed,
		MutedCount:   len(report.Muted),
		MuteFailed:   report.MuteFailed,
		DurationMs:   report.DurationMs,
	}
	if err := printResponse(resp, OutputFormat(organizeFormat)); err != nil {
		return err
	}
	if execErr != nil {
		return fmt.Errorf("run aborted: %w", execErr)
	}
	return nil
}

// buildPlanResponse converts a distributed plan to display form.
func buildPlanResponse(snap *snapshot, moves []planner.Move, muteIDs []string) *PlanResponseCLI {
	resp := &PlanResponseCLI{
		ChorgVersion:  version.Version,
		Mode:          storage.ModePlan,
		TotalChannels: len(snap.channels),
		Moves:         []PlanMoveCLI{},
	}
	for _, m := range moves {
		row := PlanMoveCLI{
			Channel: m.ChannelName,
			To:      snap.sectionName(m.ToSectionID),
			Mute:    m.Mute,
		}
		if m.FromSectionID != "" {
			row.From = snap.sectionName(m.FromSectionID)
		}
		resp.Moves = append(resp.Moves, row)
	}
	for _, cid := range muteIDs {
		name := snap.names[cid]
		if name == "" {
			name = cid
		}
		resp.MuteChannels = append(resp.MuteChannels, name)
	}
	return resp
}

// recordPlanRun stores a dry run in history.
func recordPlanRun(cfg *config.Config, logger *logging.Logger, resp *PlanResponseCLI) {
	run := storage.NewRun(storage.ModePlan)
	run.Planned = len(resp.Moves)
	run.Muted = len(resp.MuteChannels)
	if data, err := json.Marshal(resp); err == nil {
		run.ReportJSON = string(data)
	}
	saveRun(cfg, logger, run)
}

// printResponse formats and prints to stdout.
func printResponse(resp interface{}, format OutputFormat) error {
	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
