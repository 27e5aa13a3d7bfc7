package atlas

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.worldatlas")

	w, err := New(path)
	require.NoError(t, err)
	require.NoError(t, w.RegisterMap("map001", "2026-07-31T00:00:00Z"))
	require.NoError(t, w.WriteFile("map001", "provinces.csv", []byte("province_id;R;G;B\n")))
	require.NoError(t, w.WriteFile("map001", "territories/TERR0001.json", []byte(`{"territory_id":"TERR0001"}`)))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	ids, err := r.MapIDs()
	require.NoError(t, err)
	require.Equal(t, []string{"map001"}, ids)

	data, err := r.ReadFile("map001", "provinces.csv")
	require.NoError(t, err)
	require.Equal(t, "province_id;R;G;B\n", string(data))

	data, err = r.ReadFile("map001", "territories/TERR0001.json")
	require.NoError(t, err)
	require.JSONEq(t, `{"territory_id":"TERR0001"}`, string(data))
}

func TestWriterAutoFlushesAtBatchSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.worldatlas")
	w, err := New(path)
	require.NoError(t, err)
	w.batchSize = 2

	require.NoError(t, w.WriteFile("map001", "a.txt", []byte("a")))
	require.NoError(t, w.WriteFile("map001", "b.txt", []byte("b")))
	require.Empty(t, w.batch, "batch should have auto-flushed at batchSize")
	require.NoError(t, w.Close())
}
