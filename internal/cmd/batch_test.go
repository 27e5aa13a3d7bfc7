package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/worldmapgen/internal/atlas"
	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/worker"
)

func TestAtlasGeneratorWritesMapFiles(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProvinceLandPoints = 6
	cfg.ProvinceSeaPoints = 2
	cfg.TerritoryLandPoints = 2
	cfg.TerritorySeaPoints = 1

	inputDir := t.TempDir()
	writeLandPNG(t, filepath.Join(inputDir, "land.png"), 20, 14, cfg.OceanColor)

	bundlePath := filepath.Join(t.TempDir(), "bundle.worldatlas")
	bundle, err := atlas.New(bundlePath)
	require.NoError(t, err)

	gen := &atlasGenerator{cfg: cfg, bundle: bundle}
	err = gen.Generate(context.Background(), worker.Task{MapID: "map001", InputDir: inputDir})
	require.NoError(t, err)
	require.NoError(t, bundle.Close())

	r, err := atlas.Open(bundlePath)
	require.NoError(t, err)
	defer r.Close()

	ids, err := r.MapIDs()
	require.NoError(t, err)
	require.Equal(t, []string{"map001"}, ids)

	data, err := r.ReadFile("map001", "provinces.csv")
	require.NoError(t, err)
	require.Contains(t, string(data), "province_id;R;G;B")
}
