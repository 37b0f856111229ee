// Package config loads the optional project file that supplies defaults
// for command flags.
//
// The file is CUE (seriesync.cue) or YAML (seriesync.yaml). Either form is
// unified with an embedded schema that carries the defaults, so a missing
// or empty file yields the same configuration as the schema alone.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/seriesync/internal/series"
)

//go:embed schema.cue
var schemaCUE string

// DefaultFile is the project file looked up in the data root.
const DefaultFile = "seriesync.cue"

// Error codes.
const (
	ErrCodeRead    = "CONFIG_READ"
	ErrCodeParse   = "CONFIG_PARSE"
	ErrCodeInvalid = "CONFIG_INVALID"
)

// Config is the decoded project configuration.
type Config struct {
	Spec   string   `json:"spec" yaml:"spec"`
	Filter string   `json:"filter" yaml:"filter"`
	DB     string   `json:"db" yaml:"db"`
	Format string   `json:"format" yaml:"format"`
	Kinds  []string `json:"kinds" yaml:"kinds"`
}

// DataKinds parses Kinds. The schema already restricts the names, so an
// error here means the Config was built by hand.
func (c *Config) DataKinds() ([]series.DataKind, error) {
	out := make([]series.DataKind, 0, len(c.Kinds))
	for _, name := range c.Kinds {
		k, err := series.ParseDataKind(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// Error reports a configuration problem with its source position when CUE
// can supply one.
type Error struct {
	Code    string
	File    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Default returns the configuration described by the schema defaults.
func Default() *Config {
	cfg, err := decode(cuecontext.New(), "", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema defaults: %v", err))
	}
	return cfg
}

// Load reads the project file. An explicit path must exist. With an empty
// path, DefaultFile in root is used when present and defaults otherwise.
func Load(root, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(root, DefaultFile)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, File: path, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse decodes configuration from data. The file name selects the format:
// .yaml and .yml are YAML, anything else is CUE.
func Parse(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	var file cue.Value
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &Error{Code: ErrCodeParse, File: filename, Message: err.Error()}
		}
		if raw == nil {
			raw = map[string]any{}
		}
		file = ctx.Encode(raw)
	default:
		file = ctx.CompileBytes(data, cue.Filename(filename))
	}
	if err := file.Err(); err != nil {
		return nil, fromCUE(ErrCodeParse, filename, err)
	}
	return decode(ctx, filename, &file)
}

func decode(ctx *cue.Context, filename string, file *cue.Value) (*Config, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fromCUE(ErrCodeParse, "schema.cue", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config"))
	if file != nil {
		v = v.Unify(*file)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(ErrCodeInvalid, filename, err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, fromCUE(ErrCodeInvalid, filename, err)
	}
	return &cfg, nil
}

// fromCUE keeps the first CUE error and its position.
func fromCUE(code, filename string, err error) *Error {
	e := &Error{Code: code, File: filename, Message: err.Error()}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		e.Message = errs[0].Error()
		e.Pos = errs[0].Position()
	}
	return e
}
