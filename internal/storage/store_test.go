package storage

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/nepplot/internal/config"
	"github.com/san-kum/nepplot/internal/dataset"
	"github.com/san-kum/nepplot/internal/parity"
	"github.com/san-kum/nepplot/internal/table"
)

func sampleSummary(stress table.Table) parity.Summary {
	return parity.Summarize(&dataset.Dataset{
		Energy:  table.Table{{1.0, 1.1}, {2.0, 1.9}},
		Force:   table.Table{{0.1, 0.2, 0.3, 0.1, 0.2, 0.3}},
		Stress:  stress,
		Dropped: 1,
	})
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.DefaultConfig()
	stress := table.Table{{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6}}
	id, err := st.Save(NewReport("/runs/nep", cfg, sampleSummary(stress)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "train_"), id)

	r, err := st.Load(id)
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "/runs/nep", r.Dir)
	assert.Equal(t, cfg.Inputs, r.Inputs)
	assert.Equal(t, 1, r.Dropped)
	assert.InDelta(t, 100.0, float64(r.Results["energy"].RMSE), 1e-9)
	assert.Equal(t, Value(0), r.Results["force"].Components["fz"])
	assert.Equal(t, "GPa", r.Results["stress"].Unit)

	f, err := os.Open(filepath.Join(st.baseDir, id, "components.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// header + 1 energy + 3 force + 6 stress
	assert.Len(t, rows, 11)
	assert.Equal(t, []string{"energy", "energy", rows[1][2], "meV/atom"}, rows[1])
}

func TestStoreSave_EmptyStress(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	id, err := st.Save(NewReport(".", config.DefaultConfig(), sampleSummary(table.Table{})))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(st.baseDir, id, "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rmse": null`)

	r, err := st.Load(id)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(r.Results["stress"].RMSE)))
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.DefaultConfig()
	stress := table.Table{{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}}

	older := NewReport(".", cfg, sampleSummary(stress))
	older.Timestamp = time.Now().Add(-time.Hour)
	_, err := st.Save(older)
	require.NoError(t, err)

	testCfg := config.GetPreset("test")
	_, err = st.Save(NewReport(".", testCfg, sampleSummary(stress)))
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(st.baseDir, "junk"), 0755))

	reports, err := st.List()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "train", reports[0].Preset)
	assert.Equal(t, "test", reports[1].Preset)
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	reports, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestValueJSON(t *testing.T) {
	b, err := Value(math.Inf(1)).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Value(1.5).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(b))

	var v Value
	require.NoError(t, v.UnmarshalJSON([]byte("2.25")))
	assert.Equal(t, Value(2.25), v)
}
