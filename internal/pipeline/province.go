// Package pipeline implements the Province / Territory Orchestrators (C9,
// spec.md §4.9), wiring C1-C8 together. Ported from generate_province_map /
// generate_territory_map in logic/province_generator.py /
// logic/territory_generator.py, generalized from the GUI-driven "main
// layout" orchestration into a plain function pipeline.
package pipeline

import (
	"fmt"
	"image"
	imgcolor "image/color"
	"math/rand"

	"github.com/MeKo-Tech/worldmapgen/internal/biome"
	"github.com/MeKo-Tech/worldmapgen/internal/color"
	"github.com/MeKo-Tech/worldmapgen/internal/compositor"
	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/mask"
	"github.com/MeKo-Tech/worldmapgen/internal/partition"
	"github.com/MeKo-Tech/worldmapgen/internal/raster"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
	"github.com/MeKo-Tech/worldmapgen/internal/seed"
)

// ProvinceOutput is the result of running the full province pipeline.
type ProvinceOutput struct {
	Grid      *grid.Index
	Provinces []region.Province
}

// ErrEmptyDomain is EmptyDomain (spec.md §7): a requested domain (land or
// sea) has zero pixels in its fill mask, or jittered seeding produced zero
// seeds despite a nonzero requested point count. Generation halts rather
// than silently producing zero provinces/territories for that domain.
var ErrEmptyDomain = fmt.Errorf("pipeline: no points to generate")

// GenerateProvinces runs C2-C6 for the province domain: land first (index 0),
// then ocean (index len(land)), combines the two partitions, and resolves
// each province's biome by sampling biomeImg at its centroid.
func GenerateProvinces(masks *MaskSet, biomeImg image.Image, palette *biome.Palette, cfg config.Generation, rng *rand.Rand) (*ProvinceOutput, error) {
	series := region.NewSeries(cfg.ProvinceID.Prefix, cfg.ProvinceID.Start, cfg.ProvinceID.End)
	alloc := color.NewAllocator()

	landRes, err := runDomain(masks.LandFill, masks.LandBorder, cfg.ProvinceLandPoints, 0, region.KindLand, series, alloc, rng)
	if err != nil {
		return nil, err
	}
	nextIndex := region.Index(len(landRes.Accumulators))

	var seaRes *partition.Result
	if cfg.ProvinceSeaPoints > 0 {
		seaRes, err = runDomain(masks.SeaFill, masks.SeaBorder, cfg.ProvinceSeaPoints, nextIndex, region.KindOcean, series, alloc, rng)
		if err != nil {
			return nil, err
		}
	} else {
		seaRes = &partition.Result{Grid: grid.NewIndex(masks.W, masks.H)}
	}

	combined := compositor.Compose(landRes.Grid, seaRes.Grid, masks.LandMask, masks.SeaMask)

	all := append(append([]*region.Accumulator{}, landRes.Accumulators...), seaRes.Accumulators...)
	provinces := make([]region.Province, len(all))
	for i, acc := range all {
		p := acc.FinalizeProvince()
		if biomeImg != nil {
			ix, iy := clampToImage(biomeImg, p.Centroid.X, p.Centroid.Y)
			sampled := raster.RGBAt(biomeImg, ix, iy)
			id, name, _ := palette.Resolve(sampled, cfg.BiomeTolerance)
			p.BiomeColor = sampled
			p.BiomeID = id
			p.BiomeName = name
		}
		provinces[i] = p
	}

	return &ProvinceOutput{Grid: combined, Provinces: provinces}, nil
}

// runDomain runs C2 (seeding), C3 (partitioning), and C4 (border
// assignment) for one domain (land or sea). numPoints <= 0 means the caller
// deliberately disabled this domain, which is not an error; a nonzero
// numPoints that yields no fill pixels or no seeds is ErrEmptyDomain.
func runDomain(fill, border *grid.Bool, numPoints int, start region.Index, kind region.Kind, series *region.Series, alloc *color.Allocator, rng *rand.Rand) (*partition.Result, error) {
	if numPoints <= 0 {
		return &partition.Result{Grid: grid.NewIndex(fill.W, fill.H)}, nil
	}
	if !fill.Any() {
		return nil, fmt.Errorf("%w: %s domain has zero fill pixels", ErrEmptyDomain, kind)
	}

	seeds := seed.Generate(fill, numPoints, rng)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: %s domain seeding produced zero seeds", ErrEmptyDomain, kind)
	}

	res := partition.Partition(fill, seeds, start, kind, series, alloc)
	mask.AssignBorders(res.Grid, border)
	return res, nil
}

func clampToImage(img image.Image, x, y float64) (int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	ix := int(x)
	iy := int(y)
	if ix < 0 {
		ix = 0
	}
	if ix >= w {
		ix = w - 1
	}
	if iy < 0 {
		iy = 0
	}
	if iy >= h {
		iy = h - 1
	}
	return ix, iy
}

// RenderColorImage paints a visual map of combined using colorOf to look up
// each region index's RGB color, matching render_visual_map in
// logic/province_generator.py.
func RenderColorImage(combined *grid.Index, colorOf func(region.Index) (region.Color, bool)) *image.NRGBA {
	maxIdx := region.Index(-1)
	for _, v := range combined.Data {
		if v > maxIdx {
			maxIdx = v
		}
	}
	out := image.NewNRGBA(image.Rect(0, 0, combined.W, combined.H))
	if maxIdx < 0 {
		return out
	}
	lut := compositor.BuildColorLUT(maxIdx, colorOf)
	colors := compositor.RenderRGB(combined, lut)
	for i, c := range colors {
		x, y := i%combined.W, i/combined.W
		out.Set(x, y, imgcolor.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return out
}
