package store

import (
	"context"
	"fmt"

	"github.com/roach88/seriesync/internal/reconcile"
	"github.com/roach88/seriesync/internal/series"
)

// RecordReport stores every entry of a verification report under runID,
// keeping the report's order.
func (s *Store) RecordReport(ctx context.Context, runID string, report *reconcile.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO verifications (run_id, position, data_kind, region, series_id, file, found)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare report insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range report.Entries {
		if _, err := stmt.ExecContext(ctx,
			runID, i,
			e.Spec.Kind.String(), e.Spec.Region.PathName(), string(e.Spec.SeriesID),
			e.File, e.Found,
		); err != nil {
			return fmt.Errorf("record %s in run %s: %w", e.Spec.SeriesID, runID, err)
		}
	}
	return tx.Commit()
}

// ReadReport loads the verification report recorded under runID. The root
// comes from the run row.
func (s *Store) ReadReport(ctx context.Context, runID string) (*reconcile.Report, error) {
	run, ok, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT data_kind, region, series_id, file, found
		FROM verifications
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query report of run %s: %w", runID, err)
	}
	defer rows.Close()

	report := &reconcile.Report{Root: run.Root, Entries: []reconcile.Entry{}}
	for rows.Next() {
		var kindName, regionName, id, file string
		var found bool
		if err := rows.Scan(&kindName, &regionName, &id, &file, &found); err != nil {
			return nil, fmt.Errorf("scan report entry: %w", err)
		}
		kind, err := series.ParseDataKind(kindName)
		if err != nil {
			return nil, fmt.Errorf("report entry %s: %w", id, err)
		}
		region, err := series.ParseRegion(regionName)
		if err != nil {
			return nil, fmt.Errorf("report entry %s: %w", id, err)
		}
		report.Entries = append(report.Entries, reconcile.Entry{
			Spec:  series.NewSpec(kind, region, series.SeriesID(id)),
			File:  file,
			Found: found,
		})
	}
	return report, rows.Err()
}
