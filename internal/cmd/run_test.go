package cmd

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/raster"
)

func writeLandPNG(t *testing.T, path string, w, h int, ocean config.RGB) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/4 {
				img.Set(x, y, color.NRGBA{R: ocean.R, G: ocean.G, B: ocean.B, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 80, G: 130, B: 60, A: 255})
			}
		}
	}
	require.NoError(t, raster.SavePNG(path, img))
}

func TestRunFullAndWriteOutputs(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProvinceLandPoints = 6
	cfg.ProvinceSeaPoints = 2
	cfg.TerritoryLandPoints = 2
	cfg.TerritorySeaPoints = 1

	inputDir := t.TempDir()
	writeLandPNG(t, filepath.Join(inputDir, "land.png"), 24, 16, cfg.OceanColor)

	res, err := runFull(defaultMapInputs(inputDir), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, res.provinces.Provinces)
	require.NotEmpty(t, res.territories.Territories)
	require.NotNil(t, res.graph)
	require.Nil(t, res.rivers, "no heightmap was supplied, rivers should be skipped")

	outDir := t.TempDir()
	manifest, err := writeOutputs(outDir, res)
	require.NoError(t, err)

	for _, rel := range []string{manifest.ProvinceCSV, manifest.ProvinceMapPNG, manifest.BiomeMapPNG, manifest.TerritoryCSV, manifest.TerritoryMapPNG, manifest.ShapesJSON} {
		require.FileExists(t, filepath.Join(outDir, rel))
	}
	require.FileExists(t, filepath.Join(outDir, "manifest.json"))

	entries, err := os.ReadDir(filepath.Join(outDir, manifest.TerritoryJSONDir))
	require.NoError(t, err)
	require.Len(t, entries, len(res.territories.Territories))
}

func TestRunProvincesOnlyRequiresSomeInput(t *testing.T) {
	_, err := runProvincesOnly(defaultMapInputs(t.TempDir()), config.Defaults())
	require.Error(t, err)
}
