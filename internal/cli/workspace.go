package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/config"
	"github.com/roach88/seriesync/internal/keytree"
	"github.com/roach88/seriesync/internal/reconcile"
	"github.com/roach88/seriesync/internal/resource"
	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/specfile"
	"github.com/roach88/seriesync/internal/specindex"
	"github.com/roach88/seriesync/internal/store"
)

// Error codes for failures that do not carry their own code.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeSpec     = "E002" // Specification file malformed
	ErrCodeUsage    = "E003" // Invalid flag or argument
	ErrCodeDatabase = "E004" // Run log could not be opened or written
)

// workspace is what a command needs after flags and config are resolved.
type workspace struct {
	opts *RootOptions
	cfg  *config.Config
	loc  *resource.Locator
	out  *OutputFormatter
}

func newWorkspace(opts *RootOptions, cmd *cobra.Command) (*workspace, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	cfg, err := opts.settings()
	if err != nil {
		return nil, fail(out, "failed to load configuration", err)
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	return &workspace{opts: opts, cfg: cfg, loc: resource.NewLocator(root), out: out}, nil
}

// index loads the series specification named by flag, or the configured
// one, restricted to the configured data kinds.
func (w *workspace) index(flag string) (*specindex.Index, error) {
	name := flag
	if name == "" {
		name = w.cfg.Spec
	}
	kinds, err := w.cfg.DataKinds()
	if err != nil {
		return nil, fail(w.out, "invalid configuration", err)
	}
	idx, err := specfile.LoadIndex(w.loc, name, kinds...)
	if err != nil {
		return nil, fail(w.out, "failed to load specification", err)
	}
	slog.Debug("specification loaded", "spec", name, "kinds", len(kinds), "indexed", idx.Len())
	return idx, nil
}

// specName returns the flag value or the configured specification.
func (w *workspace) specName(flag string) string {
	if flag != "" {
		return flag
	}
	return w.cfg.Spec
}

// openStore opens the run log named by flag, or the configured one. It
// returns nil without error when neither is set.
func (w *workspace) openStore(flag string) (*store.Store, error) {
	path := flag
	if path == "" {
		path = w.cfg.DB
	}
	if path == "" {
		return nil, nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, failWith(w.out, ErrCodeDatabase, "failed to open run log", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if st == nil {
		return
	}
	if err := st.Close(); err != nil {
		slog.Error("error closing run log", "error", err)
	}
}

// fail reports err through the formatter and returns it as a command error.
func fail(out *OutputFormatter, message string, err error) error {
	return failWith(out, errorCode(err), message, err)
}

// failWith is fail with an explicit error code.
func failWith(out *OutputFormatter, code, message string, err error) error {
	_ = out.Error(code, message+": "+err.Error(), nil)
	return renderedError(message, err)
}

// errorCode picks the most specific code in err's chain.
func errorCode(err error) string {
	if code := resource.CodeOf(err); code != "" {
		return string(code)
	}
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		return cfgErr.Code
	}
	var parseErr *keytree.ParseError
	if errors.As(err, &parseErr) || errors.Is(err, specfile.ErrNoSeries) {
		return ErrCodeSpec
	}
	if reconcile.IsUndefinedResumePoint(err) {
		return "UNDEFINED_RESUME_POINT"
	}
	return ErrCodeGeneric
}

// bucketFlags are the --data-kind and --region flags shared by commands
// that address one bucket.
type bucketFlags struct {
	kind   string
	region string
}

func (b *bucketFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.kind, "data-kind", "", "data kind (u|cpi|inf)")
	cmd.Flags().StringVar(&b.region, "region", "", "region name, e.g. united_states")
}

func (b *bucketFlags) parse() (series.DataKind, series.Region, error) {
	if b.kind == "" || b.region == "" {
		return 0, 0, errors.New("--data-kind and --region are required")
	}
	kind, err := series.ParseDataKind(b.kind)
	if err != nil {
		return 0, 0, err
	}
	region, err := series.ParseRegion(b.region)
	if err != nil {
		return 0, 0, err
	}
	return kind, region, nil
}

// usage reports a bad flag or argument.
func usage(out *OutputFormatter, err error) error {
	_ = out.Error(ErrCodeUsage, err.Error(), nil)
	return renderedError("invalid arguments", err)
}

func renderedError(message string, err error) error {
	e := WrapExitError(ExitCommandError, message, err)
	e.Rendered = true
	return e
}
