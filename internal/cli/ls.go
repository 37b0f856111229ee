package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/resource"
)

// LsOptions holds flags for the ls command.
type LsOptions struct {
	*RootOptions
	bucket bucketFlags
}

// LsResult is the structured output of ls.
type LsResult struct {
	Kind  string   `json:"kind" yaml:"kind"`
	Dir   string   `json:"dir" yaml:"dir"`
	Files []string `json:"files" yaml:"files"`
}

var staticKinds = map[string]resource.Kind{
	"specs":   resource.Specs{},
	"css":     resource.PidGraphicsCSS{},
	"js":      resource.PidGraphicsJS{},
	"favicon": resource.PidGraphicsFavicon{},
	"ts-spec": resource.TSGraphicsSpec{},
	"ts-js":   resource.TSGraphicsJS{},
}

var bucketKinds = []string{"raw", "transformed", "meta"}

func kindNames() string {
	names := append([]string{}, bucketKinds...)
	for name := range staticKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// NewLsCommand creates the ls command.
func NewLsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls <kind>",
		Short: "List the files of one resource kind",
		Long: `List the canonical files of a resource kind, after checking that its
directory holds only the file types the kind allows.

Kinds: ` + kindNames() + `.
The raw, transformed and meta kinds need --data-kind and --region.

Example:
  seriesync ls specs
  seriesync ls raw --data-kind u --region united_states`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(opts, args[0], cmd)
		},
	}

	opts.bucket.register(cmd)

	return cmd
}

func runLs(opts *LsOptions, name string, cmd *cobra.Command) error {
	ws, err := newWorkspace(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	kind, err := opts.resolveKind(name)
	if err != nil {
		return usage(ws.out, err)
	}

	set, err := ws.loc.Resources(kind)
	if err != nil {
		return fail(ws.out, "cannot list "+name, err)
	}

	result := LsResult{Kind: name, Dir: set.Dir(), Files: set.Names()}
	return ws.out.Render(CLIResponse{Status: "ok", Data: result}, func(w io.Writer) error {
		for _, f := range result.Files {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	})
}

func (o *LsOptions) resolveKind(name string) (resource.Kind, error) {
	if k, ok := staticKinds[name]; ok {
		return k, nil
	}
	switch name {
	case "raw", "transformed", "meta":
		dataKind, region, err := o.bucket.parse()
		if err != nil {
			return nil, err
		}
		switch name {
		case "raw":
			return resource.RawData{Kind: dataKind, Region: region}, nil
		case "transformed":
			return resource.TransformedData{Kind: dataKind, Region: region}, nil
		default:
			return resource.MetaData{Kind: dataKind, Region: region}, nil
		}
	}
	return nil, fmt.Errorf("unknown resource kind %q (want one of: %s)", name, kindNames())
}
