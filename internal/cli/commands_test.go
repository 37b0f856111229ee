package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/store"
	"github.com/roach88/seriesync/internal/testutil"
)

func TestVerify_Text(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "verify")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 3 series missing")
	assertGolden(t, "verify_text", out)
}

func TestVerify_CompleteExitsZero(t *testing.T) {
	root := newFixture(t)
	root.RawFile(series.Unemployment, series.UnitedStates, "U6RATE.csv", "")

	out, err := execute(t, root.Path, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "3 found, 0 missing")
}

func TestVerify_JSONRecordsRun(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, root.Path, "--format", "json", "verify", "--db", db)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotEmpty(t, resp.RunID)
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), data["missing"])

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	report, err := st.ReadReport(testContext(t), resp.RunID)
	require.NoError(t, err)
	require.Len(t, report.Entries, 3)
	assert.Equal(t, series.SeriesID("U6RATE"), report.Missing()[0].Spec.SeriesID)
}

func TestVerify_ContaminationIsCommandError(t *testing.T) {
	root := newFixture(t)
	root.RawFile(series.PriceIndex, series.Japan, "notes.txt", "")

	out, err := execute(t, root.Path, "verify")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [EXTENSION_CONTAMINATION]")
}

func TestVerify_MissingSpec(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "verify", "--spec", "nope.keytree")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [FILE_NOT_FOUND]")
}

func TestVerify_SelectorsRootSpec(t *testing.T) {
	root := newFixture(t)
	root.Spec("picked.keytree", `selectors:
    series:
        data_type:      u
        country:        United States
        series_id:      UNRATE
`)

	out, err := execute(t, root.Path, "verify", "--spec", "picked.keytree")
	require.NoError(t, err)
	assert.Equal(t, " ok  UNRATE.csv\n1 found, 0 missing\n", out)
}

func TestVerify_SpecWithoutSeriesSection(t *testing.T) {
	root := newFixture(t)
	root.Spec("empty.keytree", "// nothing here\n")

	out, err := execute(t, root.Path, "verify", "--spec", "empty.keytree")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
	assert.NotContains(t, out, "0 found")
}

func TestVerify_StrayFileInSpecsDir(t *testing.T) {
	root := newFixture(t)
	root.Spec("README", "how the specs are maintained")

	out, err := execute(t, root.Path, "verify")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "2 found, 1 missing")
}

func TestExecute_RenderedErrors(t *testing.T) {
	root := newFixture(t)

	_, err := execute(t, root.Path, "verify", "--spec", "nope.keytree")
	require.Error(t, err)
	assert.True(t, IsRendered(err))

	_, err = execute(t, root.Path, "ls", "fonts")
	require.Error(t, err)
	assert.True(t, IsRendered(err))

	_, err = execute(t, root.Path, "verify")
	require.Error(t, err)
	assert.False(t, IsRendered(err))

	_, err = execute(t, root.Path, "--format", "xml", "verify")
	require.Error(t, err)
	assert.False(t, IsRendered(err))
}

func TestOrphans(t *testing.T) {
	root := newFixture(t)

	_, err := execute(t, root.Path, "orphans")
	require.NoError(t, err, "fixture has no orphans")

	root.RawFile(series.Unemployment, series.UnitedStates, "PAYEMS.csv", "")
	root.TransformedFile(series.Unemployment, series.UnitedStates, "UNRATE_yoy.csv", "")
	root.TransformedFile(series.Unemployment, series.UnitedStates, "PAYEMS_yoy.csv", "")

	out, err := execute(t, root.Path, "orphans")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "raw_data/u/united_states/PAYEMS.csv\n", out)

	out, err = execute(t, root.Path, "orphans", "--transformed")
	require.Error(t, err)
	assertGolden(t, "orphans_transformed", out)
}

func TestResume(t *testing.T) {
	root := newFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"whole index", nil, "u/united_states UNRATE\nu/united_states U6RATE\ncpi/japan JPNCPIALLMINMEI\n"},
		{"after first", []string{"--after", "UNRATE"}, "u/united_states U6RATE\ncpi/japan JPNCPIALLMINMEI\n"},
		{"after last", []string{"--after", "JPNCPIALLMINMEI"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, root.Path, append([]string{"resume"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestResume_UndefinedPoint(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "resume", "--after", "PAYEMS")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [UNDEFINED_RESUME_POINT]")
}

// runCheckpointCmd runs checkpoint with a fixed run id generator.
func runCheckpointCmd(t *testing.T, root, db, run string, id series.SeriesID, gen store.IDGenerator) string {
	t.Helper()
	buf := &bytes.Buffer{}
	opts := &CheckpointOptions{
		RootOptions: &RootOptions{Root: root, Format: "text"},
		Database:    db,
		Run:         run,
		IDGenerator: gen,
	}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetContext(testContext(t))
	require.NoError(t, runCheckpoint(opts, id, cmd))
	return buf.String()
}

func TestCheckpointThenResume(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")
	gen := testutil.NewFixedRunIDs("sync-1")

	out := runCheckpointCmd(t, root.Path, db, "", "UNRATE", gen)
	assert.Equal(t, "sync-1\n", out)

	out, err := execute(t, root.Path, "resume", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "u/united_states U6RATE\ncpi/japan JPNCPIALLMINMEI\n", out)

	runCheckpointCmd(t, root.Path, db, "sync-1", "U6RATE", gen)

	out, err = execute(t, root.Path, "resume", "--db", db, "--run", "sync-1")
	require.NoError(t, err)
	assert.Equal(t, "cpi/japan JPNCPIALLMINMEI\n", out)
}

func TestResume_EmptyLogIsWholeIndex(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, root.Path, "resume", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "u/united_states UNRATE\nu/united_states U6RATE\ncpi/japan JPNCPIALLMINMEI\n", out)
}

func TestResume_UnknownRun(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")
	runCheckpointCmd(t, root.Path, db, "", "UNRATE", testutil.NewFixedRunIDs("sync-1"))

	out, err := execute(t, root.Path, "resume", "--db", db, "--run", "sync-2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E003]")
	assert.Contains(t, out, `run "sync-2" is not in the run log`)
	assert.NotContains(t, out, "JPNCPIALLMINMEI")
}

func TestReport_VerifyRun(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, root.Path, "verify", "--db", db)
	require.Error(t, err)

	out, err := execute(t, root.Path, "report", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Regexp(t, `^run \S+ \(verify #1\) series_spec.keytree$`, lines[0])
	assert.Equal(t, []string{
		" ok  UNRATE.csv",
		"none U6RATE.csv",
		" ok  JPNCPIALLMINMEI.csv",
		"2 found, 1 missing",
		"",
	}, lines[1:])
}

func TestReport_SyncRun(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")
	gen := testutil.NewFixedRunIDs("sync-1")
	runCheckpointCmd(t, root.Path, db, "", "UNRATE", gen)
	runCheckpointCmd(t, root.Path, db, "sync-1", "U6RATE", gen)

	out, err := execute(t, root.Path, "report", "--db", db, "--kind", "sync")
	require.NoError(t, err)
	assert.Equal(t, "run sync-1 (sync #1) series_spec.keytree\ndone UNRATE\ndone U6RATE\n", out)

	out, err = execute(t, root.Path, "--format", "json", "report", "--db", db, "--run", "sync-1")
	require.NoError(t, err)
	var resp struct {
		RunID string       `json:"run_id"`
		Data  ReportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "sync-1", resp.RunID)
	assert.Nil(t, resp.Data.Verify)
	assert.Equal(t, []series.SeriesID{"UNRATE", "U6RATE"}, resp.Data.Checkpoints)
}

func TestReport_Errors(t *testing.T) {
	root := newFixture(t)
	db := filepath.Join(t.TempDir(), "runs.db")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no db", []string{"report"}, "--db is required"},
		{"bad kind", []string{"report", "--db", db, "--kind", "fetch"}, `unknown run kind "fetch"`},
		{"empty log", []string{"report", "--db", db}, "no verify run in the run log"},
		{"unknown run", []string{"report", "--db", db, "--run", "nope"}, `run "nope" is not in the run log`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, root.Path, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error [E003]")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCheckpoint_Validation(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "checkpoint", "UNRATE")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "--db is required")

	db := filepath.Join(t.TempDir(), "runs.db")
	out, err = execute(t, root.Path, "checkpoint", "--db", db, "PAYEMS")
	require.Error(t, err)
	assert.Contains(t, out, "not in the specification")
}

func TestLs(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "ls", "specs")
	require.NoError(t, err)
	assert.Equal(t, "series_spec.keytree\n", out)

	out, err = execute(t, root.Path, "ls", "raw", "--data-kind", "u", "--region", "United States")
	require.NoError(t, err)
	assert.Equal(t, "UNRATE.csv\n", out)

	out, err = execute(t, root.Path, "ls", "meta", "--data-kind", "u", "--region", "united_states")
	require.NoError(t, err)
	assert.Equal(t, "UNRATE.meta\n", out)

	out, err = execute(t, root.Path, "ls", "favicon")
	require.NoError(t, err)
	assert.Equal(t, "favicon.png\n", out)
}

func TestLs_YAML(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "--format", "yaml", "ls", "css")
	require.NoError(t, err)

	var resp struct {
		Status string   `yaml:"status"`
		Data   LsResult `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"style.css"}, resp.Data.Files)
}

func TestLs_Errors(t *testing.T) {
	root := newFixture(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown kind", []string{"ls", "fonts"}, "Error [E003]"},
		{"bucket flags missing", []string{"ls", "raw"}, "Error [E003]"},
		{"bad region", []string{"ls", "raw", "--data-kind", "u", "--region", "Atlantis"}, "Error [E003]"},
		{"absent directory", []string{"ls", "transformed", "--data-kind", "inf", "--region", "japan"}, "Error [DIRECTORY_NOT_FOUND]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, root.Path, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, tt.code)
		})
	}
}

func TestCheck(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "check")
	require.NoError(t, err)
	assert.Equal(t, "✓ All resource directories clean\n", out)

	root.RawFile(series.PriceIndex, series.Japan, "draft.xlsx", "")
	root.File("", "ts_graphics", "js", "chart.ts")

	out, err = execute(t, root.Path, "check")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "ts-js: EXTENSION_CONTAMINATION")
	assert.Contains(t, out, "raw cpi/japan: EXTENSION_CONTAMINATION")
}

func TestMeta(t *testing.T) {
	root := newFixture(t)

	out, err := execute(t, root.Path, "meta", "--data-kind", "u", "--region", "united_states", "UNRATE")
	require.NoError(t, err)
	assertGolden(t, "meta_unrate", out)

	out, err = execute(t, root.Path, "meta", "--data-kind", "u", "--region", "united_states", "U6RATE")
	require.Error(t, err)
	assert.Contains(t, out, "Error [FILE_NOT_FOUND]")
}

func TestSelect(t *testing.T) {
	root := newFixture(t)
	root.Spec("selectors.keytree", `selectors:
    series:
        data_type:  u
        country:    United States
        tag:        unemployment
        tag:        rate
        require:    Rate
        exclude:    Women
`)
	catalog := root.File(`"unemployment;rate;usa":
  - id: UNRATE
    title: Unemployment Rate
  - id: LNS14000002
    title: Unemployment Rate - Women
  - id: CIVPART
    title: Labor Force Participation
`, "catalog.yaml")

	out, err := execute(t, root.Path, "select", "--filter", "selectors.keytree", "--catalog", catalog)
	require.NoError(t, err)
	assertGolden(t, "select_text", out)
}

func TestSelect_UnsearchedTag(t *testing.T) {
	root := newFixture(t)
	root.Spec("selectors.keytree", "selectors:\n    series:\n        data_type: u\n        country: Japan\n")
	catalog := root.File("{}\n", "catalog.yaml")

	out, err := execute(t, root.Path, "select", "--filter", "selectors.keytree", "--catalog", catalog)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `no results for tag "japan"`)
}
