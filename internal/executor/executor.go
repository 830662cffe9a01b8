// Package executor applies a distributed move plan against the workspace,
// one operation at a time, through the rate limiter.
package executor

import (
	"context"
	"time"

	"chorg/internal/logging"
	"chorg/internal/planner"
	"chorg/internal/ratelimit"
)

// Mover is the relocation collaborator. The workspace client implements it.
type Mover interface {
	MoveChannel(ctx context.Context, channelID, fromSectionID, toSectionID string) error
	MuteChannel(ctx context.Context, channelID string) error
}

// MoveResult records the outcome of one attempted move.
type MoveResult struct {
	ChannelID     string `json:"channelId"`
	ChannelName   string `json:"channelName"`
	FromSectionID string `json:"fromSectionId,omitempty"`
	ToSectionID   string `json:"toSectionId"`
	Error         string `json:"error,omitempty"`
}

// MuteResult records the outcome of one attempted mute.
type MuteResult struct {
	ChannelID string `json:"channelId"`
	Error     string `json:"error,omitempty"`
}

// Report summarizes one execution pass.
type Report struct {
	Applied    []MoveResult `json:"applied"`
	Failed     []MoveResult `json:"failed"`
	Muted      []MuteResult `json:"muted,omitempty"`
	MuteFailed []MuteResult `json:"muteFailed,omitempty"`
	StartedAt  time.Time    `json:"startedAt"`
	DurationMs int64        `json:"durationMs"`
}

// Executor applies moves sequentially. There is no concurrency and no
// automatic retry of a failed move; a failure is recorded and the batch
// continues.
type Executor struct {
	mover   Mover
	limiter *ratelimit.Limiter
	logger  *logging.Logger
}

// New creates an executor. The limiter must be constructed per run.
func New(mover Mover, limiter *ratelimit.Limiter, logger *logging.Logger) *Executor {
	return &Executor{
		mover:   mover,
		limiter: limiter,
		logger:  logger,
	}
}

// Apply executes the moves in the exact order given, then the mute intents.
// Per-operation failures accumulate in the report and never abort the batch;
// only context cancellation ends the run early, returning the partial report
// alongside the error. Moves already applied are not rolled back.
func (e *Executor) Apply(ctx context.Context, moves []planner.Move, muteChannelIDs []string) (*Report, error) {
	report := &Report{
		Applied:   []MoveResult{},
		Failed:    []MoveResult{},
		StartedAt: time.Now().UTC(),
	}

	for _, m := range moves {
		if err := e.limiter.Wait(ctx); err != nil {
			report.DurationMs = time.Since(report.StartedAt).Milliseconds()
			return report, err
		}

		result := MoveResult{
			ChannelID:     m.ChannelID,
			ChannelName:   m.ChannelName,
			FromSectionID: m.FromSectionID,
			ToSectionID:   m.ToSectionID,
		}

		err := e.mover.MoveChannel(ctx, m.ChannelID, m.FromSectionID, m.ToSectionID)
		if err != nil {
			if ctx.Err() != nil {
				report.DurationMs = time.Since(report.StartedAt).Milliseconds()
				return report, ctx.Err()
			}
			result.Error = err.Error()
			report.Failed = append(report.Failed, result)
			e.logger.Warn("Move failed", map[string]interface{}{
				"channel": m.ChannelName,
				"to":      m.ToSectionID,
				"error":   err.Error(),
			})
			continue
		}

		report.Applied = append(report.Applied, result)
		e.logger.Debug("Moved channel", map[string]interface{}{
			"channel": m.ChannelName,
			"from":    m.FromSectionID,
			"to":      m.ToSectionID,
		})
	}

	for _, cid := range muteChannelIDs {
		if err := e.limiter.Wait(ctx); err != nil {
			report.DurationMs = time.Since(report.StartedAt).Milliseconds()
			return report, err
		}

		if err := e.mover.MuteChannel(ctx, cid); err != nil {
			if ctx.Err() != nil {
				report.DurationMs = time.Since(report.StartedAt).Milliseconds()
				return report, ctx.Err()
			}
			report.MuteFailed = append(report.MuteFailed, MuteResult{ChannelID: cid, Error: err.Error()})
			e.logger.Warn("Mute failed", map[string]interface{}{
				"channel": cid,
				"error":   err.Error(),
			})
			continue
		}
		report.Muted = append(report.Muted, MuteResult{ChannelID: cid})
	}

	report.DurationMs = time.Since(report.StartedAt).Milliseconds()
	return report, nil
}
