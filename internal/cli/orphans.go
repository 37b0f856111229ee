package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/reconcile"
	"github.com/roach88/seriesync/internal/resource"
)

// OrphansOptions holds flags for the orphans command.
type OrphansOptions struct {
	*RootOptions
	Spec        string
	Transformed bool
}

// OrphansResult is the structured output of orphans.
type OrphansResult struct {
	Orphans []string `json:"orphans" yaml:"orphans"`
}

// NewOrphansCommand creates the orphans command.
func NewOrphansCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrphansOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List data files no longer declared in the specification",
		Long: `List every file under raw_data whose series is not declared.

A derived file such as "AUSURAMS_adj.csv" belongs to its base series
"AUSURAMS". Nothing is deleted. Paths are printed relative to the root.
The command exits 1 when any orphan is found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrphans(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "spec", "", "series specification file (default from config)")
	cmd.Flags().BoolVar(&opts.Transformed, "transformed", false, "also scan transformed_data")

	return cmd
}

func runOrphans(opts *OrphansOptions, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	idx, err := ws.index(opts.Spec)
	if err != nil {
		return err
	}

	trees := []resource.DataTree{{Top: resource.RawDataDir}}
	if opts.Transformed {
		trees = append(trees, resource.DataTree{Top: resource.TransformedDataDir})
	}
	paths, err := reconcile.New(ws.loc).FindOrphans(idx, trees...)
	if err != nil {
		return fail(ws.out, "orphan scan failed", err)
	}

	result := OrphansResult{Orphans: make([]string, 0, len(paths))}
	for _, p := range paths {
		result.Orphans = append(result.Orphans, ws.relative(p))
	}

	err = ws.out.Render(CLIResponse{Status: "ok", Data: result}, func(w io.Writer) error {
		for _, p := range result.Orphans {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(result.Orphans) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d orphaned file(s)", len(result.Orphans)))
	}
	return nil
}

// relative returns path relative to the canonical root, with forward
// slashes, or path unchanged when it lies elsewhere.
func (w *workspace) relative(path string) string {
	root, err := w.loc.Dir(resource.DataTree{Top: "."})
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
