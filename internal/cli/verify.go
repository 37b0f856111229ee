package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/reconcile"
	"github.com/roach88/seriesync/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Spec     string
	Database string
}

// VerifyResult is the structured output of verify.
type VerifyResult struct {
	Report  *reconcile.Report `json:"report" yaml:"report"`
	Found   int               `json:"found" yaml:"found"`
	Missing int               `json:"missing" yaml:"missing"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every declared series has its data file",
		Long: `Check that every series declared in the specification has
"<series_id>.csv" in its raw data directory.

Each series is printed as " ok " or "none" followed by its file name. The
command exits 1 when any file is missing and 2 when a data directory is
absent or holds unexpected file types.

Example:
  seriesync verify --root ./data
  seriesync verify --root ./data --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "series specification file (default from config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the report in this run log")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	idx, err := ws.index(opts.Spec)
	if err != nil {
		return err
	}

	report, err := reconcile.New(ws.loc).Verify(idx)
	if err != nil {
		return fail(ws.out, "verification failed", err)
	}

	st, err := ws.openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	var runID string
	if st != nil {
		run, err := st.BeginRun(cmd.Context(), store.RunVerify, report.Root, ws.specName(opts.Spec))
		if err != nil {
			return failWith(ws.out, ErrCodeDatabase, "failed to record run", err)
		}
		if err := st.RecordReport(cmd.Context(), run.ID, report); err != nil {
			return failWith(ws.out, ErrCodeDatabase, "failed to record report", err)
		}
		runID = run.ID
		slog.Info("report recorded", "run_id", run.ID)
	}

	found, missing := report.Summary()
	result := VerifyResult{Report: report, Found: found, Missing: missing}
	err = ws.out.Render(CLIResponse{Status: "ok", Data: result, RunID: runID}, func(w io.Writer) error {
		return writeReport(w, result)
	})
	if err != nil {
		return err
	}

	if missing > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d series missing", missing, found+missing))
	}
	return nil
}

func writeReport(w io.Writer, r VerifyResult) error {
	for _, e := range r.Report.Entries {
		mark := " ok "
		if !e.Found {
			mark = "none"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", mark, e.File); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d found, %d missing\n", r.Found, r.Missing)
	return err
}
