package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/seriesync/internal/series"
	"github.com/roach88/seriesync/internal/testutil"
)

func TestDir_ResolvesSegments(t *testing.T) {
	root := testutil.NewStandardRoot(t)
	loc := NewLocator(root.Path)

	dir, err := loc.Dir(PidGraphicsJS{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.Path, "pid_graphics", "js"), dir)
}

func TestDir_CanonicalizesRelativeRoot(t *testing.T) {
	root := testutil.NewStandardRoot(t)
	chdir(t, root.Path)

	dir, err := NewLocator(".").Dir(Specs{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.Path, "specs"), dir)
	assert.True(t, filepath.IsAbs(dir))
}

func TestDir_MissingDirectory(t *testing.T) {
	root := testutil.NewDataRoot(t)
	loc := NewLocator(root.Path)

	_, err := loc.Dir(RawData{Kind: series.Unemployment, Region: series.Australia})
	require.Error(t, err)
	assert.True(t, IsDirectoryNotFound(err))

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, filepath.Join(root.Path, "raw_data", "u", "australia"), re.Dir)
}

func TestDir_FileIsNotADirectory(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.File("not a dir", "specs")

	_, err := NewLocator(root.Path).Dir(Specs{})
	assert.True(t, IsDirectoryNotFound(err))
}

func TestList_IncludesEverythingInNameOrder(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.RawFile(series.Unemployment, series.Australia, "b.meta", "")
	root.RawFile(series.Unemployment, series.Australia, "a.csv", "")
	root.RawFile(series.Unemployment, series.Australia, "c.txt", "")
	root.Dir("raw_data", "u", "australia", "nested")

	set, err := NewLocator(root.Path).List(RawData{Kind: series.Unemployment, Region: series.Australia})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.meta", "c.txt", "nested"}, set.Names())

	items := set.Items()
	assert.Equal(t, "csv", items[0].Ext)
	assert.True(t, items[3].IsDir)
}

func TestResources_AllowedSetPasses(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.RawFile(series.Unemployment, series.Australia, "a.csv", "")
	root.RawFile(series.Unemployment, series.Australia, "b.meta", "")
	loc := NewLocator(root.Path)

	raw, err := loc.Resources(RawData{Kind: series.Unemployment, Region: series.Australia})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, raw.Names())

	meta, err := loc.Resources(MetaData{Kind: series.Unemployment, Region: series.Australia})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.meta"}, meta.Names())
}

func TestResources_ContaminationFailsWholeDirectory(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.TransformedFile(series.Unemployment, series.Australia, "a.csv", "")
	bad := root.TransformedFile(series.Unemployment, series.Australia, "b.txt", "")
	loc := NewLocator(root.Path)

	set, err := loc.Resources(TransformedData{Kind: series.Unemployment, Region: series.Australia})
	require.Error(t, err)
	assert.Equal(t, 0, set.Len())
	assert.True(t, IsContamination(err))

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "txt", re.Ext)
	assert.Equal(t, bad, re.File)
	assert.Equal(t, filepath.Dir(bad), re.Dir)
	assert.Equal(t, []string{"csv"}, re.Allowed)
	assert.Contains(t, err.Error(), "'txt'")
	assert.Contains(t, err.Error(), filepath.Dir(bad))
}

func TestResources_FileWithoutExtensionIsContamination(t *testing.T) {
	root := testutil.NewStandardRoot(t)
	root.File("", "specs", "README")

	_, err := NewLocator(root.Path).Resources(Specs{})
	require.Error(t, err)
	assert.True(t, IsContamination(err))
}

func TestResources_SubdirectoriesAreIgnored(t *testing.T) {
	root := testutil.NewStandardRoot(t)
	root.File("", "pid_graphics", "js", "app.js")
	root.Dir("pid_graphics", "js", "vendor")

	set, err := NewLocator(root.Path).Resources(PidGraphicsJS{})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js"}, set.Names())
}

func TestResources_NamedFile(t *testing.T) {
	root := testutil.NewStandardRoot(t)
	loc := NewLocator(root.Path)

	css, err := loc.Resources(PidGraphicsCSS{})
	require.NoError(t, err)
	assert.Equal(t, []string{"style.css"}, css.Names())

	require.NoError(t, os.Remove(filepath.Join(root.Path, "pid_graphics", "favicon", "favicon.png")))
	icon, err := loc.Resources(PidGraphicsFavicon{})
	require.NoError(t, err)
	assert.Equal(t, 0, icon.Len())
}

func TestResources_DataTreeHasNoPolicy(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.File("", "raw_data", "notes.txt")
	root.RawDir(series.Inflation, series.Japan)

	set, err := NewLocator(root.Path).Resources(DataTree{Top: RawDataDir})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, set.Names())
}

func TestHasFile_MatchesTrailingComponentOnly(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.RawFile(series.Unemployment, series.Australia, "AUSURAMS.csv", "")
	root.RawFile(series.Unemployment, series.Australia, "AUSURAMS.meta", "")
	loc := NewLocator(root.Path)
	kind := RawData{Kind: series.Unemployment, Region: series.Australia}

	ok, err := loc.HasFile(kind, "AUSURAMS.csv")
	require.NoError(t, err)
	assert.True(t, ok)

	// The meta file is in the directory but is not a raw data resource.
	ok, err = loc.HasFile(kind, "AUSURAMS.meta")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = loc.HasFile(kind, "SURAMS.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = loc.HasFile(kind, "australia/AUSURAMS.csv")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasFile_PropagatesDirectoryErrors(t *testing.T) {
	root := testutil.NewDataRoot(t)
	_, err := NewLocator(root.Path).HasFile(Specs{}, "series_spec.keytree")
	assert.True(t, IsDirectoryNotFound(err))
}

func TestRead_ReturnsContents(t *testing.T) {
	root := testutil.NewStandardRoot(t)
	root.File("some js\n", "pid_graphics", "js", "test.js")

	s, err := NewLocator(root.Path).Read(PidGraphicsJS{}, "test.js")
	require.NoError(t, err)
	assert.Equal(t, "some js\n", s)
}

func TestRead_MissingFile(t *testing.T) {
	root := testutil.NewStandardRoot(t)

	_, err := NewLocator(root.Path).Read(Specs{}, "missing")
	require.Error(t, err)
	assert.True(t, IsFileNotFound(err))

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "missing", re.Name)
	assert.Equal(t, filepath.Join(root.Path, "specs"), re.Dir)
	assert.Equal(t, "FILE_NOT_FOUND: file 'missing' not found in '"+re.Dir+"'", err.Error())
}

func TestFullPath_DoesNotRequireDeclaredResource(t *testing.T) {
	root := testutil.NewDataRoot(t)
	root.RawFile(series.Unemployment, series.Japan, "LRHUTTTTJPM156S.meta", "")
	loc := NewLocator(root.Path)
	kind := RawData{Kind: series.Unemployment, Region: series.Japan}

	p, err := loc.FullPath(kind, "LRHUTTTTJPM156S.meta")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root.Path, "raw_data", "u", "japan", "LRHUTTTTJPM156S.meta"), p)

	_, err = loc.FullPath(kind, "nope.csv")
	assert.True(t, IsFileNotFound(err))
}

func TestError_Codes(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewIOError("/d", "/d/f", os.ErrPermission))
	assert.True(t, IsIO(wrapped))
	assert.ErrorIs(t, wrapped, os.ErrPermission)
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}
