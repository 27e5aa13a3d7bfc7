// Package seed implements the stratified random seed-point generator (C2)
// of spec.md §4.2, ported from logic/seed_generator.py /
// generate_jitter_seeds in province_generator.py.
package seed

import (
	"math"
	"math/rand"

	"github.com/MeKo-Tech/worldmapgen/internal/grid"
)

// Point is a pixel-space seed coordinate.
type Point struct {
	X, Y int
}

// Generate partitions the mask into a G×G grid of cells (G = max(1,
// floor(sqrt(n)))) and picks one uniformly random true pixel per cell,
// skipping cells with no eligible pixel. Result order is row-major by cell,
// matching the original's nested gy/gx loop order.
func Generate(mask *grid.Bool, n int, rng *rand.Rand) []Point {
	if n <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	g := int(math.Sqrt(float64(n)))
	if g < 1 {
		g = 1
	}

	cellH := float64(mask.H) / float64(g)
	cellW := float64(mask.W) / float64(g)

	var seeds []Point

	for gy := 0; gy < g; gy++ {
		y0 := int(float64(gy) * cellH)
		y1 := int(float64(gy+1) * cellH)
		if y1 > mask.H {
			y1 = mask.H
		}

		for gx := 0; gx < g; gx++ {
			x0 := int(float64(gx) * cellW)
			x1 := int(float64(gx+1) * cellW)
			if x1 > mask.W {
				x1 = mask.W
			}
			if y1 <= y0 || x1 <= x0 {
				continue
			}

			var candidates []Point
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					if mask.At(x, y) {
						candidates = append(candidates, Point{X: x, Y: y})
					}
				}
			}
			if len(candidates) == 0 {
				continue
			}

			seeds = append(seeds, candidates[rng.Intn(len(candidates))])
		}
	}

	return seeds
}
