// Package geoexport traces each province's boundary edges into a closed
// polygon ring and exports the result as a GeoJSON FeatureCollection, using
// paulmach/orb/geojson the way the teacher's internal/geojson converter
// uses it for OSM feature geometry. This is a supplemental export: the
// original implementation this spec was distilled from never produced
// GeoJSON, only CSV/PNG/JSON. This package is the only user of orb;
// internal/graph keeps plain integer vertex coordinates.
package geoexport

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/MeKo-Tech/worldmapgen/internal/graph"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// ProvincePolygons traces every province's incident edges in g into one or
// more closed rings and returns a GeoJSON FeatureCollection, one feature per
// ring, tagged with its owning province's ID and kind.
func ProvincePolygons(g *graph.Graph, provinces []region.Province) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range provinces {
		edgeIDs := g.RegionEdges[p.Index]
		rings := traceRings(g, edgeIDs)
		for _, ring := range rings {
			poly := orb.Polygon{ring}
			feature := geojson.NewFeature(poly)
			feature.Properties["province_id"] = string(p.ID)
			feature.Properties["province_type"] = string(p.Kind)
			fc.Append(feature)
		}
	}
	return fc
}

// edgeRef names the edge connecting a vertex to one of its neighbors within
// a single province's edge subset.
type edgeRef struct {
	other graph.VertexID
	edge  graph.EdgeID
}

// traceRings groups edgeIDs into closed vertex loops. Each vertex in the
// edge subset normally has degree 2 (a simple boundary); a stray odd-degree
// vertex from a malformed or self-touching boundary ends its ring early
// rather than looping forever.
func traceRings(g *graph.Graph, edgeIDs []graph.EdgeID) []orb.Ring {
	adj := make(map[graph.VertexID][]edgeRef)
	for _, eid := range edgeIDs {
		e := g.Edges[eid]
		adj[e.V1] = append(adj[e.V1], edgeRef{other: e.V2, edge: eid})
		adj[e.V2] = append(adj[e.V2], edgeRef{other: e.V1, edge: eid})
	}

	used := make(map[graph.EdgeID]bool, len(edgeIDs))
	var rings []orb.Ring

	for _, startEdge := range edgeIDs {
		if used[startEdge] {
			continue
		}
		e := g.Edges[startEdge]
		ring := orb.Ring{vertexPoint(g, e.V1)}
		used[startEdge] = true
		cur := e.V2
		start := e.V1
		for {
			ring = append(ring, vertexPoint(g, cur))
			if cur == start {
				break
			}
			next, ok := nextUnusedEdge(adj, used, cur)
			if !ok {
				break
			}
			used[next.edge] = true
			cur = next.other
		}
		if len(ring) >= 4 {
			rings = append(rings, ring)
		}
	}
	return rings
}

func nextUnusedEdge(adj map[graph.VertexID][]edgeRef, used map[graph.EdgeID]bool, v graph.VertexID) (edgeRef, bool) {
	for _, h := range adj[v] {
		if !used[h.edge] {
			return h, true
		}
	}
	return edgeRef{}, false
}

func vertexPoint(g *graph.Graph, v graph.VertexID) orb.Point {
	vert := g.Vertices[v]
	return orb.Point{float64(vert.X), float64(vert.Y)}
}

// MarshalFeatureCollection is a thin convenience wrapper so callers don't
// need to import encoding/json just to serialize an *geojson.FeatureCollection.
func MarshalFeatureCollection(fc *geojson.FeatureCollection) ([]byte, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("geoexport: marshal feature collection: %w", err)
	}
	return data, nil
}
