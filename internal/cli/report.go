package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	Run      string
	Kind     string
}

// ReportResult is the structured output of report.
type ReportResult struct {
	Run         store.Run         `json:"run" yaml:"run"`
	Verify      *VerifyResult     `json:"verify,omitempty" yaml:"verify,omitempty"`
	Checkpoints []series.SeriesID `json:"checkpoints" yaml:"checkpoints"`
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show what a recorded run found",
		Long: `Show a run from the run log: the verification report of a verify
run, or the series checkpointed by a sync run.

Without --run the latest run of --kind is shown.

Example:
  seriesync report --db runs.db
  seriesync report --db runs.db --kind sync
  seriesync report --db runs.db --run 0191e5c2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "run log (default from config)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run id (default: latest run of --kind)")
	cmd.Flags().StringVar(&opts.Kind, "kind", string(store.RunVerify), "run kind used without --run (verify|sync)")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	kind := store.RunKind(opts.Kind)
	if kind != store.RunVerify && kind != store.RunSync {
		return usage(ws.out, fmt.Errorf("unknown run kind %q", opts.Kind))
	}

	st, err := ws.openStore(opts.Database)
	if err != nil {
		return err
	}
	if st == nil {
		return usage(ws.out, errors.New("--db is required"))
	}
	defer closeStore(st)

	ctx := cmd.Context()
	var run store.Run
	var ok bool
	if opts.Run != "" {
		run, ok, err = st.GetRun(ctx, opts.Run)
	} else {
		run, ok, err = st.LatestRun(ctx, kind)
	}
	if err != nil {
		return failWith(ws.out, ErrCodeDatabase, "failed to read run log", err)
	}
	if !ok {
		if opts.Run != "" {
			return usage(ws.out, fmt.Errorf("run %q is not in the run log", opts.Run))
		}
		return usage(ws.out, fmt.Errorf("no %s run in the run log", kind))
	}

	result := ReportResult{Run: run}
	result.Checkpoints, err = st.Checkpoints(ctx, run.ID)
	if err != nil {
		return failWith(ws.out, ErrCodeDatabase, "failed to read checkpoints", err)
	}
	if run.Kind == store.RunVerify {
		report, err := st.ReadReport(ctx, run.ID)
		if err != nil {
			return failWith(ws.out, ErrCodeDatabase, "failed to read report", err)
		}
		found, missing := report.Summary()
		result.Verify = &VerifyResult{Report: report, Found: found, Missing: missing}
	}

	return ws.out.Render(CLIResponse{Status: "ok", Data: result, RunID: run.ID}, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "run %s (%s #%d) %s\n", run.ID, run.Kind, run.Seq, run.Spec); err != nil {
			return err
		}
		if result.Verify != nil {
			if err := writeReport(w, *result.Verify); err != nil {
				return err
			}
		}
		for _, id := range result.Checkpoints {
			if _, err := fmt.Fprintf(w, "done %s\n", id); err != nil {
				return err
			}
		}
		return nil
	})
}
