// Package color implements the deterministic, globally-unique per-region
// color assignment described in spec.md §4.1 (C1 Color Allocator), ported
// from logic/color_utils.py / the inline _color_from_id in
// province_generator.py and territory_generator.py.
package color

import (
	"math/rand"

	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// Allocator hands out unique RGB colors per (index, kind), backed by its own
// used-color set. DESIGN NOTES §9: the Python module's
// global `used_colors` set becomes an explicit value threaded through the
// pipeline instead of living at package scope, so callers can reset it per
// generation (spec.md §5) or run two generations concurrently with private
// allocators.
type Allocator struct {
	used map[region.Color]bool
}

// NewAllocator returns an empty allocator. Call this once per province
// generation and once per territory generation (spec.md §5).
func NewAllocator() *Allocator {
	return &Allocator{used: make(map[region.Color]bool)}
}

// Alloc returns a color for the given region index and kind. The color is
// never already present in the allocator's used-color set. For ocean
// regions it satisfies invariant #3 of spec.md §8 (R<60, G<80, 100<=B<180);
// for land regions any RGB triple is eligible.
//
// The PRNG is seeded deterministically from index+1, matching
// np.random.default_rng(index + 1) in the original, so two runs over the
// same region ordering produce byte-identical colors (spec.md §8 property
// 10) as long as Alloc is called in index order.
func (a *Allocator) Alloc(index region.Index, kind region.Kind) region.Color {
	rng := rand.New(rand.NewSource(int64(index) + 1))

	for {
		var c region.Color
		if kind == region.KindOcean {
			c = region.Color{
				R: uint8(rng.Intn(60)),
				G: uint8(rng.Intn(80)),
				B: uint8(100 + rng.Intn(80)),
			}
		} else {
			c = region.Color{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
			}
		}

		if !a.used[c] {
			a.used[c] = true
			return c
		}
	}
}
