package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/reconcile"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Spec string
}

// CheckResult is the structured output of check.
type CheckResult struct {
	Problems []reconcile.Problem `json:"problems" yaml:"problems"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every resource directory for absence or contamination",
		Long: `Resolve every static resource kind and the raw, metadata and
transformed directories of every declared bucket. Each directory that is
missing or holds an unexpected file type is reported. The command exits 1
when any problem is found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "series specification file (default from config)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	idx, err := ws.index(opts.Spec)
	if err != nil {
		return err
	}

	result := CheckResult{Problems: reconcile.New(ws.loc).Audit(idx)}
	err = ws.out.Render(CLIResponse{Status: "ok", Data: result}, func(w io.Writer) error {
		if len(result.Problems) == 0 {
			_, err := fmt.Fprintln(w, "✓ All resource directories clean")
			return err
		}
		for _, p := range result.Problems {
			if _, err := fmt.Fprintf(w, "%s: %s\n", p.Kind, p.Code); err != nil {
				return err
			}
			ws.out.VerboseLog("  %s", p.Err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(result.Problems) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d resource problem(s)", len(result.Problems)))
	}
	return nil
}
