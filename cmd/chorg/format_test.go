package main

import (
	"encoding/json"
	"strings"
	"testing"

	"chorg/internal/executor"
	"chorg/internal/storage"
)

func TestFormatResponse_JSON(t *testing.T) {
	resp := &PlanResponseCLI{
		ChorgVersion:  "0.3.0",
		Mode:          storage.ModePlan,
		TotalChannels: 2,
		Moves: []PlanMoveCLI{
			{Channel: "cust-vip", To: "Customers"},
		},
	}

	out, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}

	var decoded PlanResponseCLI
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.TotalChannels != 2 || len(decoded.Moves) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	if _, err := FormatResponse(&PlanResponseCLI{}, OutputFormat("xml")); err == nil {
		t.Error("FormatResponse() should reject unknown formats")
	}
}

func TestFormatPlanHuman_DryRunNotice(t *testing.T) {
	resp := &PlanResponseCLI{
		Mode:          storage.ModePlan,
		TotalChannels: 3,
		Moves: []PlanMoveCLI{
			{Channel: "cust-vip", To: "Customers"},
			{Channel: "cust-free", From: "Misc", To: "Customers", Mute: true},
		},
		MuteChannels: []string{"noisy-bot"},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}

	if !strings.Contains(out, "2 move(s), 1 mute(s) across 3 channel(s)") {
		t.Errorf("missing summary line:\n%s", out)
	}
	if !strings.Contains(out, "(unsectioned)") {
		t.Errorf("missing unsectioned marker:\n%s", out)
	}
	if !strings.Contains(out, "[mute]") {
		t.Errorf("missing mute marker:\n%s", out)
	}
	if !strings.Contains(out, "Dry run - nothing was changed") {
		t.Errorf("missing dry-run notice:\n%s", out)
	}
}

func TestFormatExecuteHuman(t *testing.T) {
	resp := &ExecuteResponseCLI{
		RunID:   "run-123",
		Applied: []executor.MoveResult{{ChannelName: "cust-vip", ToSectionID: "S1"}},
		Failed: []executor.MoveResult{
			{ChannelName: "cust-free", ToSectionID: "S1", Error: "section_full"},
		},
		MutedCount: 1,
		DurationMs: 42,
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}

	if !strings.Contains(out, "Applied 1 move(s), 1 failed, 1 muted (42ms)") {
		t.Errorf("missing summary line:\n%s", out)
	}
	if !strings.Contains(out, "section_full") {
		t.Errorf("missing failure detail:\n%s", out)
	}
	if !strings.Contains(out, "Run ID: run-123") {
		t.Errorf("missing run id:\n%s", out)
	}
}

func TestFormatSuggestHuman_Empty(t *testing.T) {
	out, err := FormatResponse(&SuggestResponseCLI{}, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}
	if !strings.Contains(out, "No recurring name patterns") {
		t.Errorf("output = %q", out)
	}
}

func TestFormatSectionsHuman(t *testing.T) {
	resp := &SectionsResponseCLI{
		Sections: []SectionRowCLI{
			{ID: "S1", Name: "Customers", Channels: 12, Available: 488},
		},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}
	if !strings.Contains(out, "Customers") || !strings.Contains(out, "488") {
		t.Errorf("output = %q", out)
	}
}
