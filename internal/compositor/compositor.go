// Package compositor implements the Region Compositor (C5, spec.md §4.5):
// merging a land partition and a sea partition into one combined index grid,
// then filling any leftover gap pixels by nearest-valid lookup. Ported from
// the combine-and-fill step of logic/province_generator.py /
// logic/territory_generator.py (the post-flood-fill merge of the two
// per-domain region grids).
package compositor

import (
	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/mask"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// Compose merges landGrid and seaGrid into one combined grid: land_grid
// values are copied where valid and inside landMask, sea_grid values where
// valid and inside seaMask. Any pixel still unassigned afterward (e.g.
// boundary pixels neither domain claimed) is filled with the index of its
// nearest valid neighbor across the union of both grids.
func Compose(landGrid, seaGrid *grid.Index, landMask, seaMask *grid.Bool) *grid.Index {
	w, h := landGrid.W, landGrid.H
	combined := grid.NewIndex(w, h)

	for i := range combined.Data {
		if v := landGrid.Data[i]; v != region.Unassigned && landMask.Data[i] {
			combined.Data[i] = v
			continue
		}
		if v := seaGrid.Data[i]; v != region.Unassigned && seaMask.Data[i] {
			combined.Data[i] = v
		}
	}

	full := grid.NewBool(w, h)
	for i := range full.Data {
		full.Data[i] = true
	}
	mask.AssignBorders(combined, full)

	return combined
}

// BuildColorLUT returns a dense R/G/B LUT indexed by region.Index, sized to
// cover [0, maxIndex]. Entries for indices with no corresponding color (a
// gap, never expected in practice) stay zero.
func BuildColorLUT(maxIndex region.Index, colorOf func(region.Index) (region.Color, bool)) []region.Color {
	lut := make([]region.Color, maxIndex+1)
	for i := region.Index(0); i <= maxIndex; i++ {
		if c, ok := colorOf(i); ok {
			lut[i] = c
		}
	}
	return lut
}

// RenderRGB paints an RGB image-sized buffer by looking up each combined-grid
// pixel's region index in lut. Pixels with no valid index are left at (0,0,0).
func RenderRGB(combined *grid.Index, lut []region.Color) []region.Color {
	out := make([]region.Color, len(combined.Data))
	for i, idx := range combined.Data {
		if idx == region.Unassigned || int(idx) >= len(lut) {
			continue
		}
		out[i] = lut[idx]
	}
	return out
}
