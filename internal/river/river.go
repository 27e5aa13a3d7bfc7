// Package river implements the River Generator (C8, spec.md §4.8): flagging
// coastline edges, sampling a blurred heightmap at every vertex, and
// accumulating steepest-descent flow downhill from high land to select which
// edges are rivers. Ported from generate_rivers in
// logic/river_generator.py, with the Gaussian blur adapted from the
// teacher's mask.GaussianBlur (disintegration/gift).
package river

import (
	"image"
	"sort"

	"github.com/disintegration/gift"

	"github.com/MeKo-Tech/worldmapgen/internal/graph"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// Options configures river generation (spec.md §9 defaults: Threshold=10,
// BlurSigma=3.0, SourcePercentile=60).
type Options struct {
	Threshold        float64
	BlurSigma        float32
	SourcePercentile float64
}

// Result holds the river classification output: the set of river edge IDs
// and the accumulated flow on every edge that carries any.
type Result struct {
	RiverEdges map[graph.EdgeID]bool
	EdgeFlow   map[graph.EdgeID]float64
}

// Generate runs C8 over g, classifying kindOf-derived land/ocean
// membership per vertex and sampling heights from heightmap (a grayscale
// luminance image, typically produced by internal/raster). kindOf resolves
// a region.Index to its Kind (land/ocean); missing heightmap data or an
// empty graph yields an empty, non-nil Result (spec.md §7 HeightmapMissing).
func Generate(g *graph.Graph, heightmap *image.Gray, kindOf func(region.Index) region.Kind, opt Options) *Result {
	result := &Result{RiverEdges: map[graph.EdgeID]bool{}, EdgeFlow: map[graph.EdgeID]float64{}}
	if g == nil || len(g.Vertices) == 0 || heightmap == nil {
		return result
	}

	edgeIsBad := make([]bool, len(g.Edges))
	vertexIsLand := make([]bool, len(g.Vertices))

	for regionIdx, edgeIDs := range g.RegionEdges {
		ocean := kindOf(regionIdx) == region.KindOcean
		for _, eid := range edgeIDs {
			if ocean {
				edgeIsBad[eid] = true
			}
			e := g.Edges[eid]
			if !ocean {
				vertexIsLand[e.V1] = true
				vertexIsLand[e.V2] = true
			}
		}
	}

	heights := sampleHeights(g.Vertices, heightmap, opt.BlurSigma)

	var landHeights []float64
	for vid, isLand := range vertexIsLand {
		if isLand {
			landHeights = append(landHeights, heights[vid])
		}
	}
	sourceThreshold := percentile(landHeights, opt.SourcePercentile)

	// Adjacency: vertex -> list of (neighbor vertex, edge id).
	type neighbor struct {
		v    graph.VertexID
		edge graph.EdgeID
	}
	adj := make([][]neighbor, len(g.Vertices))
	for eid, e := range g.Edges {
		adj[e.V1] = append(adj[e.V1], neighbor{v: e.V2, edge: graph.EdgeID(eid)})
		adj[e.V2] = append(adj[e.V2], neighbor{v: e.V1, edge: graph.EdgeID(eid)})
	}

	type route struct {
		to   graph.VertexID
		edge graph.EdgeID
	}
	downstream := make(map[graph.VertexID]route)
	for vid := range g.Vertices {
		v := graph.VertexID(vid)
		if !vertexIsLand[vid] {
			continue
		}
		myHeight := heights[vid]
		var best *route
		maxDrop := 0.0
		for _, n := range adj[v] {
			drop := myHeight - heights[n.v]
			if drop > 0.0001 && drop > maxDrop {
				maxDrop = drop
				r := route{to: n.v, edge: n.edge}
				best = &r
			}
		}
		if best != nil {
			downstream[v] = *best
		}
	}

	vFlow := make([]float64, len(g.Vertices))
	for vid := range g.Vertices {
		if vertexIsLand[vid] && heights[vid] >= sourceThreshold {
			vFlow[vid] = 1.0
		}
	}

	order := make([]int, len(g.Vertices))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return heights[order[i]] > heights[order[j]] })

	for _, vid := range order {
		v := graph.VertexID(vid)
		r, ok := downstream[v]
		if !ok {
			continue
		}
		flow := vFlow[vid]
		if flow <= 0 {
			continue
		}
		vFlow[r.to] += flow
		result.EdgeFlow[r.edge] += flow
	}

	for eid, flow := range result.EdgeFlow {
		if flow >= opt.Threshold && !edgeIsBad[eid] {
			result.RiverEdges[eid] = true
		}
	}

	return result
}

// ApplyTo sets IsRiver on every edge of g that r classifies as a river,
// leaving the rest false. Safe to call with an empty (HeightmapMissing)
// result: every edge is left at its zero value.
func (r *Result) ApplyTo(g *graph.Graph) {
	for eid := range g.Edges {
		g.Edges[eid].IsRiver = r.RiverEdges[graph.EdgeID(eid)]
	}
}

// sampleHeights Gaussian-blurs heightmap (sigma per opt.BlurSigma) then
// samples it at every vertex's pixel-corner coordinate, scaling coordinates
// when the heightmap's resolution disagrees with the graph's by more than 1%.
func sampleHeights(vertices []graph.Vertex, heightmap *image.Gray, sigma float32) []float64 {
	blurred := blur(heightmap, sigma)
	bounds := blurred.Bounds()
	hw, hh := bounds.Dx(), bounds.Dy()

	maxVX, maxVY := 0, 0
	for _, v := range vertices {
		if v.X > maxVX {
			maxVX = v.X
		}
		if v.Y > maxVY {
			maxVY = v.Y
		}
	}

	scaleX, scaleY := 1.0, 1.0
	if maxVX > 0 {
		scaleX = float64(hw) / float64(maxVX+1)
	}
	if maxVY > 0 {
		scaleY = float64(hh) / float64(maxVY+1)
	}
	needScale := abs(scaleX-1.0) > 0.01 || abs(scaleY-1.0) > 0.01

	heights := make([]float64, len(vertices))
	for i, v := range vertices {
		vx, vy := float64(v.X), float64(v.Y)
		if needScale {
			vx *= scaleX
			vy *= scaleY
		}
		px := clampInt(int(vx), 0, hw-1)
		py := clampInt(int(vy), 0, hh-1)
		heights[i] = float64(blurred.GrayAt(bounds.Min.X+px, bounds.Min.Y+py).Y)
	}
	return heights
}

func blur(src *image.Gray, sigma float32) *image.Gray {
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewGray(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := (p / 100.0) * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
