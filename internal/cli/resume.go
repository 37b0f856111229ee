package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/reconcile"
	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/store"
)

// ResumeOptions holds flags for the resume command.
type ResumeOptions struct {
	*RootOptions
	Spec     string
	After    string
	Database string
	Run      string
}

// ResumeResult is the structured output of resume.
type ResumeResult struct {
	After     series.SeriesID `json:"after,omitempty" yaml:"after,omitempty"`
	Remaining []series.Spec   `json:"remaining" yaml:"remaining"`
}

// NewResumeCommand creates the resume command.
func NewResumeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResumeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Print the series left after an interrupted pass",
		Long: `Print the declared series that come after a resume point, in
specification order.

The resume point is --after when given. Otherwise it is the last checkpoint
of --run (or of the latest sync run) in the run log. Without any checkpoint
the whole specification is printed.

Example:
  seriesync resume --after UNRATE
  seriesync resume --db runs.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResume(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "series specification file (default from config)")
	cmd.Flags().StringVar(&opts.After, "after", "", "series id of the last completed series")
	cmd.Flags().StringVar(&opts.Database, "db", "", "run log to read the checkpoint from")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run id (default: latest sync run)")

	return cmd
}

func runResume(opts *ResumeOptions, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	idx, err := ws.index(opts.Spec)
	if err != nil {
		return err
	}

	after := series.SeriesID(opts.After)
	if after == "" {
		after, err = lastCheckpoint(ws, cmd, opts)
		if err != nil {
			return err
		}
	}

	result := ResumeResult{After: after, Remaining: idx.All()}
	if after != "" {
		result.Remaining, err = reconcile.ResumeFrom(idx, after)
		if err != nil {
			return fail(ws.out, "cannot resume", err)
		}
	}
	slog.Debug("resume computed", "after", string(after), "remaining", len(result.Remaining))

	return ws.out.Render(CLIResponse{Status: "ok", Data: result}, func(w io.Writer) error {
		for _, s := range result.Remaining {
			if _, err := fmt.Fprintf(w, "%s %s\n", s.Key(), s.SeriesID); err != nil {
				return err
			}
		}
		return nil
	})
}

// lastCheckpoint reads the resume point from the run log. It returns ""
// when no log is configured or nothing was checkpointed yet. An explicit
// run id must name a run in the log.
func lastCheckpoint(ws *workspace, cmd *cobra.Command, opts *ResumeOptions) (series.SeriesID, error) {
	st, err := ws.openStore(opts.Database)
	if err != nil || st == nil {
		return "", err
	}
	defer closeStore(st)

	ctx := cmd.Context()
	runID := opts.Run
	if runID != "" {
		_, ok, err := st.GetRun(ctx, runID)
		if err != nil {
			return "", failWith(ws.out, ErrCodeDatabase, "failed to read run log", err)
		}
		if !ok {
			return "", usage(ws.out, fmt.Errorf("run %q is not in the run log", runID))
		}
	} else {
		run, ok, err := st.LatestRun(ctx, store.RunSync)
		if err != nil {
			return "", failWith(ws.out, ErrCodeDatabase, "failed to read run log", err)
		}
		if !ok {
			return "", nil
		}
		runID = run.ID
	}

	last, ok, err := st.LastCheckpoint(ctx, runID)
	if err != nil {
		return "", failWith(ws.out, ErrCodeDatabase, "failed to read run log", err)
	}
	if !ok {
		return "", nil
	}
	slog.Info("resuming from checkpoint", "run_id", runID, "series_id", string(last))
	return last, nil
}
