package pipeline

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/graph"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

func syntheticLandImage(w, h int, ocean config.RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/3 {
				img.Set(x, y, color.NRGBA{R: ocean.R, G: ocean.G, B: ocean.B, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 90, G: 140, B: 60, A: 255})
			}
		}
	}
	return img
}

func TestProvinceAndTerritoryPipelineEndToEnd(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProvinceLandPoints = 9
	cfg.ProvinceSeaPoints = 4
	cfg.TerritoryLandPoints = 2
	cfg.TerritorySeaPoints = 1

	land := syntheticLandImage(30, 20, cfg.OceanColor)

	masks, err := DeriveMasks(nil, land, cfg)
	require.NoError(t, err)
	require.True(t, masks.LandMask.Any())
	require.True(t, masks.SeaMask.Any())

	rng := rand.New(rand.NewSource(1))
	provOut, err := GenerateProvinces(masks, nil, nil, cfg, rng)
	require.NoError(t, err)
	require.NotEmpty(t, provOut.Provinces)

	for _, v := range provOut.Grid.Data {
		require.NotEqual(t, region.Unassigned, v, "every pixel should be claimed after compositing")
	}

	terrOut, err := GenerateTerritories(masks, provOut.Provinces, cfg, rng)
	require.NoError(t, err)
	require.NotEmpty(t, terrOut.Territories)

	assigned := 0
	for _, terr := range terrOut.Territories {
		assigned += len(terr.ProvinceIDs)
	}
	require.Equal(t, len(provOut.Provinces), assigned, "every province should be attached to exactly one territory")

	g := graph.Extract(provOut.Grid)
	require.NotEmpty(t, g.Vertices)
	require.NotEmpty(t, g.Edges)

	kindOf := func(idx region.Index) region.Kind {
		for _, p := range provOut.Provinces {
			if p.Index == idx {
				return p.Kind
			}
		}
		return region.KindLand
	}
	_ = kindOf // river generation exercised in internal/river's own tests; here we only check the graph is well-formed

	colorOf := func(idx region.Index) (region.Color, bool) {
		for _, p := range provOut.Provinces {
			if p.Index == idx {
				return p.Color, true
			}
		}
		return region.Color{}, false
	}
	img := RenderColorImage(provOut.Grid, colorOf)
	require.Equal(t, provOut.Grid.W, img.Bounds().Dx())
	require.Equal(t, provOut.Grid.H, img.Bounds().Dy())
}

func TestGenerateProvincesEmptySeaDomainErrors(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProvinceLandPoints = 9
	cfg.ProvinceSeaPoints = 4

	// An all-land image: sea is requested (ProvinceSeaPoints > 0) but the
	// sea fill mask has zero pixels, which must halt generation rather than
	// silently produce zero sea provinces.
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.NRGBA{R: 90, G: 140, B: 60, A: 255})
		}
	}

	masks, err := DeriveMasks(nil, img, cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	_, err = GenerateProvinces(masks, nil, nil, cfg, rng)
	require.ErrorIs(t, err, ErrEmptyDomain)
}

func TestDeriveMasksRequiresSomeInput(t *testing.T) {
	_, err := DeriveMasks(nil, nil, config.Defaults())
	require.ErrorIs(t, err, ErrNoMapSize)
}

func TestDeriveMasksBoundaryOnly(t *testing.T) {
	cfg := config.Defaults()
	w, h := 10, 10
	boundary := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 5 {
				boundary.Set(x, y, color.NRGBA{R: cfg.BoundaryColor.R, G: cfg.BoundaryColor.G, B: cfg.BoundaryColor.B, A: 255})
			} else {
				boundary.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	masks, err := DeriveMasks(boundary, nil, cfg)
	require.NoError(t, err)
	require.Equal(t, w, masks.W)
	require.Equal(t, h, masks.H)
	// With no land image, everything is land, and the boundary column is
	// excluded from the fill but present in the border.
	require.False(t, masks.LandFill.At(5, 0))
	require.True(t, masks.LandBorder.At(5, 0))
}
