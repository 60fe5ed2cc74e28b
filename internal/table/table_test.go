package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const energyOut = `-3.7421 -3.7400
-3.6010   -3.6105

# comment
	-3.9001 -3.8997
`

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(energyOut))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Rows())
	require.Equal(t, 2, tbl.Width())

	assert.Equal(t, []float64{-3.7421, -3.6010, -3.9001}, tbl.Column(0))
	assert.Equal(t, []float64{-3.7400, -3.6105, -3.8997}, tbl.Column(1))
}

func TestParse_ScientificNotation(t *testing.T) {
	tbl, err := Parse(strings.NewReader("1e6 -2.5E-3\n"))
	require.NoError(t, err)
	assert.Equal(t, Table{{1e6, -2.5e-3}}, tbl)
}

func TestParse_TrailingComment(t *testing.T) {
	tbl, err := Parse(strings.NewReader("1.0 1.1 # first frame\n2.0 1.9#\n"))
	require.NoError(t, err)
	assert.Equal(t, Table{{1.0, 1.1}, {2.0, 1.9}}, tbl)
}

func TestParse_Empty(t *testing.T) {
	tbl, err := Parse(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Rows())
	assert.Equal(t, 0, tbl.Width())
	assert.NoError(t, tbl.Require(12))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("1.0 2.0\n3.0 abc\n"))
	require.ErrorIs(t, err, ErrMalformed)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "abc", pe.Token)
}

func TestParse_Ragged(t *testing.T) {
	_, err := Parse(strings.NewReader("1 2 3\n4 5\n"))
	require.ErrorIs(t, err, ErrRagged)
}

func TestColumns(t *testing.T) {
	tbl := Table{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
	}
	assert.Equal(t, []float64{4, 5, 6, 10, 11, 12}, tbl.Columns(3, 6))
	assert.Equal(t, []float64{1, 2, 3, 7, 8, 9}, tbl.Columns(0, 3))
}

func TestRequire(t *testing.T) {
	tbl := Table{{1, 2, 3, 4, 5, 6}}
	assert.NoError(t, tbl.Require(6))
	assert.NoError(t, tbl.Require(2))

	err := tbl.Require(12)
	require.ErrorIs(t, err, ErrTooNarrow)
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 12, se.Want)
	assert.Equal(t, 6, se.Got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "energy_train.out"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy_train.out")
	require.NoError(t, os.WriteFile(path, []byte(energyOut), 0644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())
}

func TestLoad_MalformedKeepsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "force_train.out")
	require.NoError(t, os.WriteFile(path, []byte("1 2 x\n"), 0644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "force_train.out")
}

func TestLoad_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy_train.out.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(energyOut))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())
}

func TestLoad_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy_train.out.zst")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = zw.Write([]byte(energyOut))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, -3.8997, tbl[2][1])
}
