package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/store"
)

// CheckpointOptions holds flags for the checkpoint command.
type CheckpointOptions struct {
	*RootOptions
	Spec     string
	Database string
	Run      string

	// IDGenerator overrides run id generation (for testing).
	IDGenerator store.IDGenerator
}

// CheckpointResult is the structured output of checkpoint.
type CheckpointResult struct {
	RunID    string          `json:"run_id" yaml:"run_id"`
	SeriesID series.SeriesID `json:"series_id" yaml:"series_id"`
}

// NewCheckpointCommand creates the checkpoint command.
func NewCheckpointCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckpointOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkpoint <series-id>",
		Short: "Record that a series finished downloading",
		Long: `Record a completed series in a sync run so a later resume can skip it.

Without --run a new sync run is begun and its id is printed; pass that id
with --run on the following checkpoints. The series must be declared in
the specification.

Example:
  seriesync checkpoint --db runs.db UNRATE
  seriesync checkpoint --db runs.db --run 0191e5c2-... U6RATE`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckpoint(opts, series.SeriesID(args[0]), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "series specification file (default from config)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "run log (default from config)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run id (default: begin a new sync run)")

	return cmd
}

func runCheckpoint(opts *CheckpointOptions, id series.SeriesID, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	idx, err := ws.index(opts.Spec)
	if err != nil {
		return err
	}
	if !idx.Contains(id) {
		return usage(ws.out, fmt.Errorf("series %q is not in the specification", string(id)))
	}

	path := opts.Database
	if path == "" {
		path = ws.cfg.DB
	}
	if path == "" {
		return usage(ws.out, errors.New("--db is required"))
	}
	var storeOpts []store.Option
	if opts.IDGenerator != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDGenerator))
	}
	st, err := store.Open(path, storeOpts...)
	if err != nil {
		return failWith(ws.out, ErrCodeDatabase, "failed to open run log", err)
	}
	defer closeStore(st)

	ctx := cmd.Context()
	runID := opts.Run
	if runID == "" {
		run, err := st.BeginRun(ctx, store.RunSync, ws.loc.Root(), ws.specName(opts.Spec))
		if err != nil {
			return failWith(ws.out, ErrCodeDatabase, "failed to begin run", err)
		}
		runID = run.ID
	}
	if err := st.Checkpoint(ctx, runID, id); err != nil {
		return failWith(ws.out, ErrCodeDatabase, "failed to record checkpoint", err)
	}

	result := CheckpointResult{RunID: runID, SeriesID: id}
	return ws.out.Render(CLIResponse{Status: "ok", Data: result, RunID: runID}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, runID)
		return err
	})
}
