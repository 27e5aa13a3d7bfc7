// Package partition implements the multi-source BFS flood-fill region
// partitioner (C3) of spec.md §4.3, ported from flood_fill in
// logic/province_generator.py / logic/territory_generator.py.
package partition

import (
	"github.com/MeKo-Tech/worldmapgen/internal/color"
	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
	"github.com/MeKo-Tech/worldmapgen/internal/seed"
)

// pixel is a queued BFS candidate.
type pixel struct {
	x, y  int
	index region.Index
}

// Result holds the output of Partition: the filled index grid and, in seed
// order, the accumulator for every region that got a seed.
type Result struct {
	Grid         *grid.Index
	Accumulators []*region.Accumulator
}

// Partition runs seeded multi-source BFS flood fill over fillMask, honoring
// borderMask only implicitly (fillMask ∩ borderMask = ∅ by construction, so
// it is never consulted directly — spec.md §4.3). Each seed starts its own
// region at startIndex+i; ties between regions at equal BFS distance are
// broken FIFO (earlier seed wins), which falls out naturally from using one
// shared queue and checking region.Unassigned before claiming.
//
// If the ID generator is exhausted for a seed, that seed is skipped (no
// region emitted, no pixels claimed) per spec.md §7 IdExhausted, and BFS
// continues for the remaining seeds.
func Partition(
	fillMask *grid.Bool,
	seeds []seed.Point,
	startIndex region.Index,
	kind region.Kind,
	series *region.Series,
	alloc *color.Allocator,
) *Result {
	w, h := fillMask.W, fillMask.H
	idx := grid.NewIndex(w, h)

	var accs []*region.Accumulator
	var queue []pixel

	nextIndex := startIndex
	for _, s := range seeds {
		if !fillMask.At(s.X, s.Y) {
			continue
		}

		id, err := series.Next()
		if err != nil {
			// IdExhausted: skip this region, keep going with remaining seeds.
			continue
		}

		c := alloc.Alloc(nextIndex, kind)
		acc := region.NewAccumulator(nextIndex, id, kind, c, s.X, s.Y)
		accs = append(accs, acc)

		idx.Set(s.X, s.Y, nextIndex)
		queue = append(queue, pixel{x: s.X, y: s.Y, index: nextIndex})

		nextIndex++
	}

	accByIndex := make(map[region.Index]*region.Accumulator, len(accs))
	for _, a := range accs {
		accByIndex[a.Index] = a
	}

	deltas := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		acc := accByIndex[p.index]

		for _, d := range deltas {
			nx, ny := p.x+d[0], p.y+d[1]
			if !idx.InBounds(nx, ny) {
				continue
			}
			if idx.At(nx, ny) != region.Unassigned {
				continue
			}
			if !fillMask.At(nx, ny) {
				continue
			}

			idx.Set(nx, ny, p.index)
			acc.Claim(nx, ny)
			queue = append(queue, pixel{x: nx, y: ny, index: p.index})
		}
	}

	return &Result{Grid: idx, Accumulators: accs}
}
