package compositor

import (
	"testing"

	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

func TestComposePrefersLandThenSeaThenFills(t *testing.T) {
	w, h := 4, 1
	land := grid.NewIndex(w, h)
	sea := grid.NewIndex(w, h)
	landMask := grid.NewBool(w, h)
	seaMask := grid.NewBool(w, h)

	// x=0: land claims it.
	land.Set(0, 0, 10)
	landMask.Set(0, 0, true)

	// x=1: sea claims it.
	sea.Set(1, 0, 20)
	seaMask.Set(1, 0, true)

	// x=2: neither side claims (gap); x=3: land value present but mask false,
	// sea value present and mask true so sea wins.
	sea.Set(3, 0, 21)
	seaMask.Set(3, 0, true)
	land.Set(3, 0, 11)

	combined := Compose(land, sea, landMask, seaMask)

	if combined.At(0, 0) != 10 {
		t.Fatalf("expected land index 10 at x=0, got %d", combined.At(0, 0))
	}
	if combined.At(1, 0) != 20 {
		t.Fatalf("expected sea index 20 at x=1, got %d", combined.At(1, 0))
	}
	if combined.At(3, 0) != 21 {
		t.Fatalf("expected sea index 21 at x=3 (land mask false), got %d", combined.At(3, 0))
	}
	if combined.At(2, 0) == region.Unassigned {
		t.Fatalf("gap pixel at x=2 should be filled by nearest-valid lookup")
	}
}

func TestBuildColorLUTAndRenderRGB(t *testing.T) {
	w, h := 2, 1
	combined := grid.NewIndex(w, h)
	combined.Set(0, 0, 0)
	combined.Set(1, 0, 1)

	colors := map[region.Index]region.Color{
		0: {R: 10, G: 20, B: 30},
		1: {R: 40, G: 50, B: 60},
	}
	lut := BuildColorLUT(1, func(i region.Index) (region.Color, bool) {
		c, ok := colors[i]
		return c, ok
	})

	out := RenderRGB(combined, lut)
	if out[0] != colors[0] || out[1] != colors[1] {
		t.Fatalf("unexpected rendered colors: %v", out)
	}
}
