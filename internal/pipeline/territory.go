package pipeline

import (
	"math/rand"

	"github.com/MeKo-Tech/worldmapgen/internal/color"
	"github.com/MeKo-Tech/worldmapgen/internal/compositor"
	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/partition"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// TerritoryOutput is the result of running the territory pipeline.
type TerritoryOutput struct {
	Grid       *grid.Index
	Territories []region.Territory
}

// GenerateTerritories runs a second C2-C5 pass at coarser seed counts to
// partition the same masks into territories, then assigns each province to
// the territory whose region contains the province's centroid. Ported from
// generate_territory_map in logic/territory_generator.py; the original's
// color-round-trip join (province color -> province_id, territory color ->
// territory_id via two RGB LUTs read back from rendered PNGs) is replaced
// here by a direct region-index lookup, since both grids are already held
// as dense indices and never need to pass through pixel colors to be
// joined.
func GenerateTerritories(masks *MaskSet, provinces []region.Province, cfg config.Generation, rng *rand.Rand) (*TerritoryOutput, error) {
	series := region.NewSeries(cfg.TerritoryID.Prefix, cfg.TerritoryID.Start, cfg.TerritoryID.End)
	alloc := color.NewAllocator()

	landRes, err := runDomain(masks.LandFill, masks.LandBorder, cfg.TerritoryLandPoints, 0, region.KindLand, series, alloc, rng)
	if err != nil {
		return nil, err
	}
	nextIndex := region.Index(len(landRes.Accumulators))

	var seaRes *partition.Result
	if cfg.TerritorySeaPoints > 0 {
		seaRes, err = runDomain(masks.SeaFill, masks.SeaBorder, cfg.TerritorySeaPoints, nextIndex, region.KindOcean, series, alloc, rng)
		if err != nil {
			return nil, err
		}
	} else {
		seaRes = &partition.Result{Grid: grid.NewIndex(masks.W, masks.H)}
	}

	combined := compositor.Compose(landRes.Grid, seaRes.Grid, masks.LandMask, masks.SeaMask)

	all := append(append([]*region.Accumulator{}, landRes.Accumulators...), seaRes.Accumulators...)
	territories := make([]region.Territory, len(all))
	byIndex := make(map[region.Index]int, len(all))
	for i, acc := range all {
		territories[i] = acc.FinalizeTerritory()
		byIndex[acc.Index] = i
	}

	for _, p := range provinces {
		ix, iy := clampToGrid(combined, p.Centroid.X, p.Centroid.Y)
		terrIdx := combined.At(ix, iy)
		if terrIdx == region.Unassigned {
			continue
		}
		ti, ok := byIndex[terrIdx]
		if !ok {
			continue
		}
		territories[ti].ProvinceIDs = append(territories[ti].ProvinceIDs, p.ID)
	}

	return &TerritoryOutput{Grid: combined, Territories: territories}, nil
}

func clampToGrid(g *grid.Index, x, y float64) (int, int) {
	ix, iy := int(x), int(y)
	if ix < 0 {
		ix = 0
	}
	if ix >= g.W {
		ix = g.W - 1
	}
	if iy < 0 {
		iy = 0
	}
	if iy >= g.H {
		iy = g.H - 1
	}
	return ix, iy
}

// ProvinceTerritoryColors paints a province-indexed image where each pixel
// takes the color of the territory that owns the province occupying that
// pixel, leaving pixels whose province has no owning territory untouched
// (zero value), matching build_province_based_territory_image.
func ProvinceTerritoryColors(provinceGrid *grid.Index, provinces []region.Province, territories []region.Territory) func(region.Index) (region.Color, bool) {
	provinceOwner := make(map[region.ID]region.Color)
	for _, t := range territories {
		for _, pid := range t.ProvinceIDs {
			provinceOwner[pid] = t.Color
		}
	}
	idOf := make(map[region.Index]region.ID, len(provinces))
	for _, p := range provinces {
		idOf[p.Index] = p.ID
	}
	return func(idx region.Index) (region.Color, bool) {
		pid, ok := idOf[idx]
		if !ok {
			return region.Color{}, false
		}
		c, ok := provinceOwner[pid]
		return c, ok
	}
}
