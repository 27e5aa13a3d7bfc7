package mask

import (
	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// AssignBorders overwrites every region.Unassigned pixel of idx that is set
// in borderMask with the region index of its nearest already-assigned pixel
// (spec.md §4.4, C4). Pixels outside borderMask are left as they are, even
// when unassigned, and border pixels that already carry an index are not
// overwritten. Ported from assign_borders in
// logic/province_generator.py, which calls
// scipy.ndimage.distance_transform_edt(..., return_indices=True) against the
// already-filled region grid and reads off the source pixel's label.
func AssignBorders(idx *grid.Index, borderMask *grid.Bool) {
	w, h := idx.W, idx.H

	valid := make([]bool, w*h)
	for i, v := range idx.Data {
		valid[i] = v != region.Unassigned
	}
	if !anyTrue(valid) {
		return
	}

	_, nearest := sourceEDT(valid, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !borderMask.At(x, y) {
				continue
			}
			if idx.Data[i] != region.Unassigned {
				continue
			}
			src := nearest[i]
			if src < 0 {
				continue
			}
			idx.Data[i] = idx.Data[src]
		}
	}
}

func anyTrue(v []bool) bool {
	for _, b := range v {
		if b {
			return true
		}
	}
	return false
}
