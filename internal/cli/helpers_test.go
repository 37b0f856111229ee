package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/testutil"
)

// fixtureSpec declares the cpi bucket first; output must follow bucket
// order (u before cpi) with declaration order inside a bucket.
const fixtureSpec = `seriess:
    series:
        data_type:      cpi
        country:        Japan
        series_id:      JPNCPIALLMINMEI
    series:
        data_type:      u
        country:        United States
        series_id:      UNRATE
    series:
        data_type:      u
        country:        United States
        series_id:      U6RATE
`

const unrateMeta = `series_meta:
    realtime:               2021-06-03
    series_id:              UNRATE
    title:                  Unemployment Rate
    observation_start:      1948-01-01
    observation_end:        2021-05-01
    frequency:              Monthly
    seasonal_adjustment:    Seasonally Adjusted
`

// newFixture builds a clean data root: every directory present, U6RATE
// missing, nothing orphaned.
func newFixture(t *testing.T) *testutil.DataRoot {
	t.Helper()
	root := testutil.NewStandardRoot(t)
	root.Spec("series_spec.keytree", fixtureSpec)
	root.RawFile(series.Unemployment, series.UnitedStates, "UNRATE.csv", "date,value\n2021-05-01,5.8\n")
	root.RawFile(series.Unemployment, series.UnitedStates, "UNRATE.meta", unrateMeta)
	root.RawFile(series.PriceIndex, series.Japan, "JPNCPIALLMINMEI.csv", "date,value\n")
	root.TransformedDir(series.Unemployment, series.UnitedStates)
	root.TransformedDir(series.PriceIndex, series.Japan)
	return root
}

// execute runs the root command against root and returns stdout.
func execute(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--root", root}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}
