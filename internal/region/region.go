// Package region defines the dense internal region index and the opaque
// external region identifier, kept as separate types per the data model in
// spec.md so indices and IDs are never accidentally mixed.
package region

import "fmt"

// Index is a dense, 0-based internal region index. Land and ocean regions of
// the same map share one index space.
type Index int32

// Unassigned marks a pixel that has not yet been claimed by any region.
const Unassigned Index = -1

// ID is the externally visible identifier for a region: PREFIX + zero-padded
// integer, unique within its kind.
type ID string

// Kind distinguishes land from ocean regions.
type Kind string

const (
	KindLand  Kind = "land"
	KindOcean Kind = "ocean"
)

// Color is an RGB triple, all channels uint8, matching spec.md's (R,G,B).
type Color struct {
	R, G, B uint8
}

// Centroid is a pixel-space coordinate, computed over pre-border fill pixels.
type Centroid struct {
	X, Y float64
}

// Province is an immutable region record for a land or ocean province.
type Province struct {
	Index      Index
	ID         ID
	Kind       Kind
	Color      Color
	Centroid   Centroid
	BiomeColor Color
	BiomeID    string
	BiomeName  string
}

// Territory is an immutable region record for a coarser grouping of provinces.
type Territory struct {
	Index       Index
	ID          ID
	Kind        Kind
	Color       Color
	Centroid    Centroid
	ProvinceIDs []ID
}

// DefaultBiomeID and DefaultBiomeName are used when no biome palette was
// supplied or no centroid color could be resolved (spec.md §3).
const (
	DefaultBiomeID   = "unknown"
	DefaultBiomeName = "Unknown"
)

// String renders the region ID as plain text.
func (id ID) String() string {
	return string(id)
}

// Accumulator tracks the running centroid sum and pixel count for a region
// during flood fill (DESIGN NOTES §9: mutable accumulator during BFS,
// finalized to an immutable record afterward).
type Accumulator struct {
	Index  Index
	ID     ID
	Kind   Kind
	Color  Color
	SumX   int64
	SumY   int64
	Count  int64
}

// NewAccumulator seeds an accumulator at a single pixel.
func NewAccumulator(index Index, id ID, kind Kind, color Color, sx, sy int) *Accumulator {
	return &Accumulator{
		Index: index,
		ID:    id,
		Kind:  kind,
		Color: color,
		SumX:  int64(sx),
		SumY:  int64(sy),
		Count: 1,
	}
}

// Claim records a newly-claimed pixel's contribution to the centroid sum.
func (a *Accumulator) Claim(x, y int) {
	a.SumX += int64(x)
	a.SumY += int64(y)
	a.Count++
}

// Centroid computes the mean pixel position claimed so far.
func (a *Accumulator) Centroid() Centroid {
	if a.Count == 0 {
		return Centroid{}
	}
	return Centroid{
		X: float64(a.SumX) / float64(a.Count),
		Y: float64(a.SumY) / float64(a.Count),
	}
}

// FinalizeProvince converts an accumulator into an immutable province record
// with default (unresolved) biome fields.
func (a *Accumulator) FinalizeProvince() Province {
	return Province{
		Index:      a.Index,
		ID:         a.ID,
		Kind:       a.Kind,
		Color:      a.Color,
		Centroid:   a.Centroid(),
		BiomeColor: Color{},
		BiomeID:    DefaultBiomeID,
		BiomeName:  DefaultBiomeName,
	}
}

// FinalizeTerritory converts an accumulator into an immutable territory
// record; province membership is attached later by the orchestrator.
func (a *Accumulator) FinalizeTerritory() Territory {
	return Territory{
		Index:    a.Index,
		ID:       a.ID,
		Kind:     a.Kind,
		Color:    a.Color,
		Centroid: a.Centroid(),
	}
}

// ValidateDense checks invariant #2 of spec.md §8: indices in the metadata
// list are exactly 0..N-1 in order.
func ValidateDense(indices []Index) error {
	for i, idx := range indices {
		if int(idx) != i {
			return fmt.Errorf("region metadata not densely ordered: entry %d has index %d", i, idx)
		}
	}
	return nil
}
