package mask

import (
	"testing"

	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// TestAssignBordersWallAbsorption mirrors the S5 "border absorption"
// scenario: a 10x10 grid with a wall column at x=5 splits two seeded
// regions; after AssignBorders every wall pixel should inherit the index of
// whichever seed's region is nearest.
func TestAssignBordersWallAbsorption(t *testing.T) {
	w, h := 10, 10
	idx := grid.NewIndex(w, h)
	border := grid.NewBool(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x == 5:
				border.Set(x, y, true)
			case x < 5:
				idx.Set(x, y, 0)
			default:
				idx.Set(x, y, 1)
			}
		}
	}

	AssignBorders(idx, border)

	for y := 0; y < h; y++ {
		if idx.At(5, y) == region.Unassigned {
			t.Fatalf("wall pixel (5,%d) still unassigned after AssignBorders", y)
		}
		// Wall sits equidistant between x=4 (region 0) and x=6 (region 1);
		// either is a legal nearest-source pick, but it must be one of them.
		got := idx.At(5, y)
		if got != 0 && got != 1 {
			t.Fatalf("wall pixel (5,%d) got unexpected region %d", y, got)
		}
	}
}

func TestAssignBordersOnlyTouchesMaskedPixels(t *testing.T) {
	w, h := 4, 4
	idx := grid.NewIndex(w, h)
	idx.Set(0, 0, 3)
	border := grid.NewBool(w, h)
	border.Set(1, 1, true)

	AssignBorders(idx, border)

	if idx.At(1, 1) != 3 {
		t.Fatalf("expected border pixel to absorb the only region's index, got %d", idx.At(1, 1))
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if x == 1 && y == 1 {
				continue
			}
			if idx.At(x, y) != region.Unassigned {
				t.Fatalf("pixel (%d,%d) outside border mask should stay unassigned, got %d", x, y, idx.At(x, y))
			}
		}
	}
}

func TestAssignBordersNoOpWhenNothingValid(t *testing.T) {
	w, h := 3, 3
	idx := grid.NewIndex(w, h)
	border := grid.NewBool(w, h)
	for i := range border.Data {
		border.Data[i] = true
	}

	AssignBorders(idx, border) // should not panic, nothing to absorb from

	for _, v := range idx.Data {
		if v != region.Unassigned {
			t.Fatalf("expected all pixels to remain unassigned, got %d", v)
		}
	}
}
