// Package graph implements the Planar Graph Extractor (C7, spec.md §4.7):
// turning a combined region-index grid into a planar subdivision graph of
// vertices, edges, and per-region edge adjacency. Ported from extract_shapes
// / trace / get_provinces_for_seg in logic/shape_extractor.py.
package graph

import "github.com/MeKo-Tech/worldmapgen/internal/grid"
import "github.com/MeKo-Tech/worldmapgen/internal/region"

// VertexID indexes Graph.Vertices.
type VertexID int

// EdgeID indexes Graph.Edges.
type EdgeID int

// Vertex is a corner of the pixel lattice, in grid-corner coordinates:
// X ranges [0,W], Y ranges [0,H].
type Vertex struct {
	X, Y int
}

// Edge is a traced chain of lattice segments between two vertices (or a
// closed loop with V1==V2 for an island with no natural junction). IsRiver
// is left false here; the river generator (C8) fills it in.
type Edge struct {
	V1, V2  VertexID
	IsRiver bool
}

// Graph is the planar subdivision extracted from a region grid.
type Graph struct {
	Vertices    []Vertex
	Edges       []Edge
	RegionEdges map[region.Index][]EdgeID
}

// direction constants matching the four lattice-walk directions: 0=right,
// 1=down, 2=left, 3=up.
const (
	dirRight = 0
	dirDown  = 1
	dirLeft  = 2
	dirUp    = 3
)

// lattice holds the present/absent H and V segment arrays for an (H,W) grid.
type lattice struct {
	w, h int
	hSeg []bool // (h+1) x w, row-major: hSeg[row*w+col]
	vSeg []bool // h x (w+1), row-major: vSeg[row*(w+1)+col]
}

func buildLattice(idx *grid.Index) *lattice {
	w, h := idx.W, idx.H
	l := &lattice{w: w, h: h, hSeg: make([]bool, (h+1)*w), vSeg: make([]bool, h*(w+1))}

	for row := 0; row <= h; row++ {
		for col := 0; col < w; col++ {
			v := row == 0 || row == h || idx.At(col, row-1) != idx.At(col, row)
			l.hSeg[row*w+col] = v
		}
	}
	for row := 0; row < h; row++ {
		for col := 0; col <= w; col++ {
			v := col == 0 || col == w || idx.At(col-1, row) != idx.At(col, row)
			l.vSeg[row*(w+1)+col] = v
		}
	}
	return l
}

// H reports whether the horizontal segment at (row,col) is present; out of
// range is always absent.
func (l *lattice) H(row, col int) bool {
	if row < 0 || row > l.h || col < 0 || col >= l.w {
		return false
	}
	return l.hSeg[row*l.w+col]
}

// V reports whether the vertical segment at (row,col) is present; out of
// range is always absent.
func (l *lattice) V(row, col int) bool {
	if row < 0 || row >= l.h || col < 0 || col > l.w {
		return false
	}
	return l.vSeg[row*(l.w+1)+col]
}

// degree is the number of present segments incident to corner (y,x).
func (l *lattice) degree(y, x int) int {
	d := 0
	if l.H(y, x-1) {
		d++
	}
	if l.H(y, x) {
		d++
	}
	if l.V(y-1, x) {
		d++
	}
	if l.V(y, x) {
		d++
	}
	return d
}

// hSegProvinces returns the two region indices flanking horizontal segment
// (row,col): the region above and the region below, region.Unassigned for
// off-grid.
func hSegProvinces(idx *grid.Index, h, row, col int) (above, below region.Index) {
	above, below = region.Unassigned, region.Unassigned
	if row > 0 {
		above = idx.At(col, row-1)
	}
	if row < h {
		below = idx.At(col, row)
	}
	return
}

// vSegProvinces returns the two region indices flanking vertical segment
// (row,col): the region to the left and the region to the right.
func vSegProvinces(idx *grid.Index, w, row, col int) (left, right region.Index) {
	left, right = region.Unassigned, region.Unassigned
	if col > 0 {
		left = idx.At(col-1, row)
	}
	if col < w {
		right = idx.At(col, row)
	}
	return
}

type corner struct{ y, x int }

type extractor struct {
	idx         *grid.Index
	lat         *lattice
	w, h        int
	visitedH    []bool // (h+1) x w
	visitedV    []bool // h x (w+1)
	vertexID    map[corner]VertexID
	vertices    []Vertex
	edges       []Edge
	regionEdges map[region.Index][]EdgeID
}

func (e *extractor) hVisited(row, col int) bool { return e.visitedH[row*e.w+col] }
func (e *extractor) setHVisited(row, col int)   { e.visitedH[row*e.w+col] = true }
func (e *extractor) vVisited(row, col int) bool { return e.visitedV[row*(e.w+1)+col] }
func (e *extractor) setVVisited(row, col int)   { e.visitedV[row*(e.w+1)+col] = true }

func (e *extractor) vertexAt(y, x int) (VertexID, bool) {
	id, ok := e.vertexID[corner{y, x}]
	return id, ok
}

func (e *extractor) addVertex(y, x int) VertexID {
	id := VertexID(len(e.vertices))
	e.vertexID[corner{y, x}] = id
	e.vertices = append(e.vertices, Vertex{X: x, Y: y})
	return id
}

// segAt reports whether the segment leaving corner (y,x) in direction dir is
// present.
func (e *extractor) segAt(y, x, dir int) bool {
	switch dir {
	case dirRight:
		return e.lat.H(y, x)
	case dirDown:
		return e.lat.V(y, x)
	case dirLeft:
		return e.lat.H(y, x-1)
	default: // dirUp
		return e.lat.V(y-1, x)
	}
}

// segVisited and markSeg operate on the segment leaving corner (y,x) in
// direction dir.
func (e *extractor) segVisited(y, x, dir int) bool {
	switch dir {
	case dirRight:
		return e.hVisited(y, x)
	case dirDown:
		return e.vVisited(y, x)
	case dirLeft:
		return e.hVisited(y, x-1)
	default:
		return e.vVisited(y-1, x)
	}
}

func (e *extractor) markSeg(y, x, dir int) {
	switch dir {
	case dirRight:
		e.setHVisited(y, x)
	case dirDown:
		e.setVVisited(y, x)
	case dirLeft:
		e.setHVisited(y, x-1)
	default:
		e.setVVisited(y-1, x)
	}
}

func step(y, x, dir int) (ny, nx int) {
	switch dir {
	case dirRight:
		return y, x + 1
	case dirDown:
		return y + 1, x
	case dirLeft:
		return y, x - 1
	default:
		return y - 1, x
	}
}

// provincesOf resolves the pair of region indices flanking the current
// segment (before any movement), matching get_provinces_for_seg.
func (e *extractor) provincesOf(y, x, dir int) (p1, p2 region.Index) {
	switch dir {
	case dirRight:
		return hSegProvinces(e.idx, e.h, y, x)
	case dirDown:
		return vSegProvinces(e.idx, e.w, y, x)
	case dirLeft:
		return hSegProvinces(e.idx, e.h, y, x-1)
	default:
		return vSegProvinces(e.idx, e.w, y-1, x)
	}
}

// trace walks from vertex (startY,startX) along startDir until it reaches
// another vertex corner (or a dead end), marking every segment traversed.
// Returns the terminal corner and the constant flanking province pair.
func (e *extractor) trace(startY, startX, startDir int) (endX, endY int, p1, p2 region.Index) {
	cy, cx, cdir := startY, startX, startDir
	p1, p2 = e.provincesOf(cy, cx, cdir)

	for {
		if e.segVisited(cy, cx, cdir) {
			return cx, cy, p1, p2 // defensive: shouldn't occur, caller already checked
		}
		e.markSeg(cy, cx, cdir)
		ny, nx := step(cy, cx, cdir)

		if _, ok := e.vertexAt(ny, nx); ok {
			return nx, ny, p1, p2
		}

		rev := (cdir + 2) % 4
		found := false
		for d := 0; d < 4; d++ {
			if d == rev {
				continue
			}
			if e.segAt(ny, nx, d) {
				cdir = d
				cy, cx = ny, nx
				found = true
				break
			}
		}
		if !found {
			return nx, ny, p1, p2
		}
	}
}

func (e *extractor) addEdge(v1, v2 VertexID, p1, p2 region.Index) {
	id := EdgeID(len(e.edges))
	e.edges = append(e.edges, Edge{V1: v1, V2: v2})
	if p1 != region.Unassigned {
		e.regionEdges[p1] = append(e.regionEdges[p1], id)
	}
	if p2 != region.Unassigned {
		e.regionEdges[p2] = append(e.regionEdges[p2], id)
	}
}

// Extract builds the planar subdivision graph of idx (spec.md §4.7). idx
// must have no region.Unassigned values remaining (the compositor's job).
func Extract(idx *grid.Index) *Graph {
	w, h := idx.W, idx.H
	e := &extractor{
		idx:         idx,
		lat:         buildLattice(idx),
		w:           w,
		h:           h,
		visitedH:    make([]bool, (h+1)*w),
		visitedV:    make([]bool, h*(w+1)),
		vertexID:    make(map[corner]VertexID),
		regionEdges: make(map[region.Index][]EdgeID),
	}

	// Find nodes: corners on at least one present segment whose
	// segment-degree != 2, in row-major scan order so vertex IDs are
	// allocated in that order. Degree-0 corners lie inside a region and are
	// not part of the graph.
	var nodeCorners []corner
	for y := 0; y <= h; y++ {
		for x := 0; x <= w; x++ {
			if d := e.lat.degree(y, x); d != 0 && d != 2 {
				nodeCorners = append(nodeCorners, corner{y, x})
				e.addVertex(y, x)
			}
		}
	}

	// Trace from every node, one edge per unvisited incident direction.
	for _, c := range nodeCorners {
		y, x := c.y, c.x
		for _, d := range [4]int{dirRight, dirDown, dirLeft, dirUp} {
			if !e.segAt(y, x, d) || e.segVisited(y, x, d) {
				continue
			}
			ex, ey, p1, p2 := e.trace(y, x, d)
			v1, _ := e.vertexAt(y, x)
			v2, _ := e.vertexAt(ey, ex)
			e.addEdge(v1, v2, p1, p2)
		}
	}

	// Island loops: any still-unvisited H segment belongs to a closed loop
	// with no natural vertex; promote its corner and trace a self-loop edge.
	for y := 0; y <= h; y++ {
		for x := 0; x < w; x++ {
			if !e.lat.hSeg[y*w+x] || e.hVisited(y, x) {
				continue
			}
			v1, ok := e.vertexAt(y, x)
			if !ok {
				v1 = e.addVertex(y, x)
			}
			_, _, p1, p2 := e.trace(y, x, dirRight)
			e.addEdge(v1, v1, p1, p2)
		}
	}

	return &Graph{Vertices: e.vertices, Edges: e.edges, RegionEdges: e.regionEdges}
}
