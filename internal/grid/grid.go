// Package grid provides the flat row-major buffers used throughout the
// pipeline (DESIGN NOTES §9: "Bool grids and int grids" become contiguous
// row-major buffers with explicit (H,W) shape instead of numpy arrays).
package grid

import "github.com/MeKo-Tech/worldmapgen/internal/region"

// Bool is a row-major boolean grid of shape (H, W).
type Bool struct {
	W, H int
	Data []bool // len == W*H
}

// NewBool allocates a zeroed boolean grid.
func NewBool(w, h int) *Bool {
	return &Bool{W: w, H: h, Data: make([]bool, w*h)}
}

// At returns the value at (x, y).
func (b *Bool) At(x, y int) bool {
	return b.Data[y*b.W+x]
}

// Set assigns the value at (x, y).
func (b *Bool) Set(x, y int, v bool) {
	b.Data[y*b.W+x] = v
}

// And returns the pixelwise AND of two same-shaped grids.
func (b *Bool) And(other *Bool) *Bool {
	out := NewBool(b.W, b.H)
	for i := range out.Data {
		out.Data[i] = b.Data[i] && other.Data[i]
	}
	return out
}

// AndNot returns b & !other.
func (b *Bool) AndNot(other *Bool) *Bool {
	out := NewBool(b.W, b.H)
	for i := range out.Data {
		out.Data[i] = b.Data[i] && !other.Data[i]
	}
	return out
}

// Or returns the pixelwise OR of two same-shaped grids.
func (b *Bool) Or(other *Bool) *Bool {
	out := NewBool(b.W, b.H)
	for i := range out.Data {
		out.Data[i] = b.Data[i] || other.Data[i]
	}
	return out
}

// Not returns the pixelwise negation.
func (b *Bool) Not() *Bool {
	out := NewBool(b.W, b.H)
	for i := range out.Data {
		out.Data[i] = !b.Data[i]
	}
	return out
}

// Any reports whether any pixel is true.
func (b *Bool) Any() bool {
	for _, v := range b.Data {
		if v {
			return true
		}
	}
	return false
}

// Index is a row-major grid of region.Index, shape (H, W), used for the
// "Region index grid" of spec.md §3: value >= 0 is a dense region index,
// region.Unassigned (-1) means unassigned or wall, pending.
type Index struct {
	W, H int
	Data []region.Index // len == W*H
}

// NewIndex allocates a grid filled with region.Unassigned.
func NewIndex(w, h int) *Index {
	data := make([]region.Index, w*h)
	for i := range data {
		data[i] = region.Unassigned
	}
	return &Index{W: w, H: h, Data: data}
}

// At returns the region index at (x, y).
func (g *Index) At(x, y int) region.Index {
	return g.Data[y*g.W+x]
}

// Set assigns the region index at (x, y).
func (g *Index) Set(x, y int, v region.Index) {
	g.Data[y*g.W+x] = v
}

// InBounds reports whether (x, y) lies within the grid.
func (g *Index) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}
