package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/seriesync/internal/series"
)

// RunKind distinguishes what a run did.
type RunKind string

const (
	// RunSync is a download session that records checkpoints.
	RunSync RunKind = "sync"
	// RunVerify is a verification whose report is recorded.
	RunVerify RunKind = "verify"
)

// Run is one recorded pass over a specification file.
type Run struct {
	ID   string  `json:"id" yaml:"id"`
	Kind RunKind `json:"kind" yaml:"kind"`
	Root string  `json:"root" yaml:"root"`
	Spec string  `json:"spec" yaml:"spec"`
	Seq  int64   `json:"seq" yaml:"seq"`
}

// BeginRun records a new run and returns it. Runs are numbered by a
// store-wide seq that only grows.
func (s *Store) BeginRun(ctx context.Context, kind RunKind, root, spec string) (Run, error) {
	run := Run{ID: s.ids.Generate(), Kind: kind, Root: root, Spec: spec}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("next run seq: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, root, spec, seq)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), run.Root, run.Spec, run.Seq); err != nil {
		return Run{}, fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return run, nil
}

// GetRun returns the run with the given id. ok is false when no such run
// exists.
func (s *Store) GetRun(ctx context.Context, id string) (run Run, ok bool, err error) {
	return s.scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, kind, root, spec, seq FROM runs WHERE id = ?
	`, id))
}

// LatestRun returns the most recently begun run of the given kind.
func (s *Store) LatestRun(ctx context.Context, kind RunKind) (run Run, ok bool, err error) {
	return s.scanRun(s.db.QueryRowContext(ctx, `
		SELECT id, kind, root, spec, seq FROM runs
		WHERE kind = ?
		ORDER BY seq DESC
		LIMIT 1
	`, string(kind)))
}

func (s *Store) scanRun(row *sql.Row) (Run, bool, error) {
	var run Run
	var kind string
	err := row.Scan(&run.ID, &kind, &run.Root, &run.Spec, &run.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("scan run: %w", err)
	}
	run.Kind = RunKind(kind)
	return run, true, nil
}

// Checkpoint records that seriesID was completed in the run.
// Returns an error if the run does not exist.
func (s *Store) Checkpoint(ctx context.Context, runID string, seriesID series.SeriesID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkpoint: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM checkpoints WHERE run_id = ?
	`, runID).Scan(&seq); err != nil {
		return fmt.Errorf("next checkpoint seq: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO checkpoints (run_id, seq, series_id) VALUES (?, ?, ?)
	`, runID, seq, string(seriesID)); err != nil {
		return fmt.Errorf("checkpoint %s in run %s: %w", seriesID, runID, err)
	}
	return tx.Commit()
}

// LastCheckpoint returns the most recent series completed in the run.
// ok is false when the run has no checkpoints.
func (s *Store) LastCheckpoint(ctx context.Context, runID string) (id series.SeriesID, ok bool, err error) {
	var raw string
	err = s.db.QueryRowContext(ctx, `
		SELECT series_id FROM checkpoints
		WHERE run_id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, runID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("last checkpoint of run %s: %w", runID, err)
	}
	return series.SeriesID(raw), true, nil
}

// Checkpoints returns every series completed in the run, oldest first.
func (s *Store) Checkpoints(ctx context.Context, runID string) ([]series.SeriesID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT series_id FROM checkpoints
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query checkpoints of run %s: %w", runID, err)
	}
	defer rows.Close()

	ids := []series.SeriesID{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan checkpoint: %w", err)
		}
		ids = append(ids, series.SeriesID(raw))
	}
	return ids, rows.Err()
}
