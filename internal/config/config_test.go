package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seriesync/internal/series"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, &Config{
		Spec:   "series_spec.keytree",
		Filter: "",
		DB:     "",
		Format: "text",
		Kinds:  []string{"u", "cpi", "inf"},
	}, cfg)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.cue"))

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, ErrCodeRead, cfgErr.Code)
}

func TestLoad_DefaultFileInRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFile), []byte(`
spec: "asia.keytree"
db:   "runs.db"
kinds: ["u"]
`), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "asia.keytree", cfg.Spec)
	assert.Equal(t, "runs.db", cfg.DB)
	assert.Equal(t, "text", cfg.Format)

	kinds, err := cfg.DataKinds()
	require.NoError(t, err)
	assert.Equal(t, []series.DataKind{series.Unemployment}, kinds)
}

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse("seriesync.yaml", []byte("format: json\nfilter: selectors.keytree\n"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "selectors.keytree", cfg.Filter)
	assert.Equal(t, "series_spec.keytree", cfg.Spec)
}

func TestParse_EmptyYAML(t *testing.T) {
	cfg, err := Parse("seriesync.yml", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		code string
	}{
		{"bad format", "seriesync.cue", `format: "xml"`, ErrCodeInvalid},
		{"bad kind", "seriesync.cue", `kinds: ["gdp"]`, ErrCodeInvalid},
		{"spec extension", "seriesync.cue", `spec: "series.txt"`, ErrCodeInvalid},
		{"unknown field", "seriesync.cue", `root: "/data"`, ErrCodeInvalid},
		{"cue syntax", "seriesync.cue", `spec: [`, ErrCodeParse},
		{"yaml syntax", "seriesync.yaml", "spec: [", ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.data))

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.code, cfgErr.Code)
		})
	}
}

func TestError_Format(t *testing.T) {
	err := &Error{Code: ErrCodeRead, File: "seriesync.cue", Message: "permission denied"}
	assert.Equal(t, "seriesync.cue: CONFIG_READ: permission denied", err.Error())

	err = &Error{Code: ErrCodeInvalid, Message: "bad"}
	assert.Equal(t, "CONFIG_INVALID: bad", err.Error())
}
