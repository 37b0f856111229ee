package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/specfile"
)

// MetaOptions holds flags for the meta command.
type MetaOptions struct {
	*RootOptions
	bucket bucketFlags
}

// NewMetaCommand creates the meta command.
func NewMetaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MetaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "meta <series-id>",
		Short: "Print the stored provider metadata of a series",
		Long: `Read "<series_id>.meta" from the raw data directory of the given
bucket and print its fields.

Example:
  seriesync meta --data-kind u --region united_states UNRATE`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeta(opts, series.SeriesID(args[0]), cmd)
		},
	}

	opts.bucket.register(cmd)

	return cmd
}

func runMeta(opts *MetaOptions, id series.SeriesID, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	kind, region, err := opts.bucket.parse()
	if err != nil {
		return usage(ws.out, err)
	}

	m, err := specfile.LoadMeta(ws.loc, series.NewSpec(kind, region, id))
	if err != nil {
		return fail(ws.out, "cannot read metadata", err)
	}

	return ws.out.Render(CLIResponse{Status: "ok", Data: m}, func(w io.Writer) error {
		rows := [][2]string{
			{"series_id", string(m.SeriesID)},
			{"title", m.Title},
			{"frequency", m.Frequency},
			{"seasonal_adjustment", m.SeasonalAdjustment},
			{"observation_start", m.ObservationStart},
			{"observation_end", m.ObservationEnd},
			{"realtime", m.Realtime},
		}
		if m.Notes != "" {
			rows = append(rows, [2]string{"notes", m.Notes})
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%-20s %s\n", r[0]+":", r[1]); err != nil {
				return err
			}
		}
		return nil
	})
}
