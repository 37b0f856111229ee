package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/seriesync/internal/selector"
	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/specfile"
)

// SelectOptions holds flags for the select command.
type SelectOptions struct {
	*RootOptions
	Filter  string
	Catalog string
}

// SelectResult is the structured output of select.
type SelectResult struct {
	Selected  []series.Spec        `json:"selected" yaml:"selected"`
	Decisions []selector.Decision `json:"decisions" yaml:"decisions"`
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Apply a selector file to a saved provider catalog",
		Long: `Apply the selectors of a filter file to provider search results saved
as YAML, and print which series each selector keeps.

The catalog maps a tag query to the items the provider returned for it:

  "unemployment;rate;usa":
    - id: UNRATE
      title: Unemployment Rate

Example:
  seriesync select --filter selectors.keytree --catalog catalog.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "selector file in specs (default from config)")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "YAML provider catalog (required)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runSelect(opts *SelectOptions, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	name := opts.Filter
	if name == "" {
		name = ws.cfg.Filter
	}
	if name == "" {
		return usage(ws.out, errors.New("--filter is required when the config sets none"))
	}

	sels, err := specfile.LoadFilter(ws.loc, name)
	if err != nil {
		return fail(ws.out, "failed to load selectors", err)
	}
	catalog, err := loadCatalog(opts.Catalog)
	if err != nil {
		return fail(ws.out, "failed to load catalog", err)
	}

	specs, decisions, err := selector.Build(cmd.Context(), sels, catalog)
	if err != nil {
		return fail(ws.out, "selection failed", err)
	}

	result := SelectResult{Selected: specs, Decisions: decisions}
	if result.Selected == nil {
		result.Selected = []series.Spec{}
	}
	return ws.out.Render(CLIResponse{Status: "ok", Data: result}, func(w io.Writer) error {
		for _, d := range result.Decisions {
			mark := "keep"
			if !d.Kept {
				mark = "drop"
			}
			if _, err := fmt.Fprintf(w, "%s %-20s %s\n", mark, d.ID, d.Title); err != nil {
				return err
			}
		}
		return nil
	})
}

// catalogLister serves tag queries from a saved catalog.
type catalogLister map[string][]catalogItem

type catalogItem struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

func loadCatalog(path string) (catalogLister, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c catalogLister
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// SeriesForTags implements selector.TitleLister. A tag absent from the
// catalog was never searched, which is an error rather than an empty result.
func (c catalogLister) SeriesForTags(_ context.Context, tag string) ([]selector.Item, error) {
	items, ok := c[tag]
	if !ok {
		return nil, fmt.Errorf("catalog has no results for tag %q", tag)
	}
	out := make([]selector.Item, len(items))
	for i, it := range items {
		out[i] = selector.Item{ID: it.ID, Title: it.Title}
	}
	return out, nil
}
