package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run modes.
const (
	// ModePlan is a dry run: plan computed, nothing applied
	ModePlan = "plan"
	// ModeWrite applied the plan against the workspace
	ModeWrite = "write"
)

// Run is one recorded organize run.
type Run struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	StartedAt  time.Time `json:"startedAt"`
	Planned    int       `json:"planned"`
	Applied    int       `json:"applied"`
	Failed     int       `json:"failed"`
	Muted      int       `json:"muted"`
	ReportJSON string    `json:"-"`
}

// NewRun creates a run record with a fresh id.
func NewRun(mode string) Run {
	return Run{
		ID:        uuid.New().String(),
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}
}

// SaveRun persists a run, then prunes history beyond keep entries.
// keep <= 0 disables pruning.
func (db *DB) SaveRun(run Run, keep int) error {
	err := db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO runs (id, mode, started_at, planned, applied, failed, muted, report_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, run.Mode, run.StartedAt.Format(time.RFC3339), run.Planned, run.Applied, run.Failed, run.Muted, run.ReportJSON)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		if keep > 0 {
			_, err = tx.Exec(`
				DELETE FROM runs WHERE id NOT IN (
					SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
				)
			`, keep)
			if err != nil {
				return fmt.Errorf("prune runs: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.Debug("Saved run", map[string]interface{}{
		"id":   run.ID,
		"mode": run.Mode,
	})
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, mode, started_at, planned, applied, failed, muted, report_json
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &r.Mode, &startedAt, &r.Planned, &r.Applied, &r.Failed, &r.Muted, &r.ReportJSON); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		t, err := time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
		}
		r.StartedAt = t
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
