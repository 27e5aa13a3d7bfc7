package pipeline

import (
	"fmt"
	"image"

	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/raster"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// MaskSet holds the derived fill/border masks for both domains, ported from
// the mask-derivation prologue shared by generate_province_map and
// generate_territory_map in logic/province_generator.py /
// logic/territory_generator.py.
type MaskSet struct {
	W, H int

	LandMask *grid.Bool
	SeaMask  *grid.Bool

	LandFill, LandBorder *grid.Bool
	SeaFill, SeaBorder   *grid.Bool
}

// ErrNoMapSize is InputMissing (spec.md §7): neither a boundary nor a
// land/ocean image was supplied, so the map's pixel dimensions cannot be
// determined.
var ErrNoMapSize = fmt.Errorf("pipeline: need at least a boundary or land/ocean image to determine map size")

// DeriveMasks computes fill and border masks for land and sea from the
// optional boundary image and the optional land/ocean image.
func DeriveMasks(boundaryImg, landImg image.Image, cfg config.Generation) (*MaskSet, error) {
	var boundaryMask *grid.Bool
	w, h := 0, 0

	if boundaryImg != nil {
		target := cfg.BoundaryColor
		if cfg.BoundaryIsGray {
			target = config.RGB{R: cfg.BoundaryGray.V, G: cfg.BoundaryGray.V, B: cfg.BoundaryGray.V}
		}
		boundaryMask = raster.ColorMatchMask(boundaryImg, region.Color(target))
		w, h = boundaryMask.W, boundaryMask.H
	}

	var seaMask, landMask *grid.Bool
	if landImg != nil {
		seaMask = raster.ColorMatchMask(landImg, region.Color(cfg.OceanColor))
		landMask = seaMask.Not()
		if boundaryMask == nil {
			w, h = seaMask.W, seaMask.H
		}
	} else {
		if boundaryMask == nil {
			return nil, ErrNoMapSize
		}
		seaMask = grid.NewBool(w, h)
		landMask = grid.NewBool(w, h)
		for i := range landMask.Data {
			landMask.Data[i] = true
		}
	}

	ms := &MaskSet{W: w, H: h, LandMask: landMask, SeaMask: seaMask}

	if boundaryMask == nil {
		ms.LandFill = landMask
		ms.LandBorder = seaMask
		ms.SeaFill = seaMask
		ms.SeaBorder = landMask
	} else {
		ms.LandFill = landMask.AndNot(boundaryMask)
		ms.LandBorder = boundaryMask.Or(seaMask)
		ms.SeaFill = seaMask.AndNot(boundaryMask)
		ms.SeaBorder = boundaryMask.Or(landMask)
	}

	return ms, nil
}
