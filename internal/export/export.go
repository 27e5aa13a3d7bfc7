// Package export writes the external interfaces of spec.md §6: province and
// territory CSVs, per-territory JSON, the province shapes JSON, map PNGs,
// and the master manifest. Ported from export_module.py, which wrote the
// same files with csv.DictWriter and json.dump from the original pipeline.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MeKo-Tech/worldmapgen/internal/graph"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

var provinceCSVHeader = []string{
	"province_id", "R", "G", "B", "province_type", "x", "y",
	"Biome_R", "Biome_G", "Biome_B", "Biome_ID", "Biome_Name",
}

// WriteProvinceCSV writes one row per province in metadata order (spec.md
// §6 "Province CSV"), ';'-delimited, x/y to 2 decimals.
func WriteProvinceCSV(path string, provinces []region.Province) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(provinceCSVHeader); err != nil {
		return err
	}
	for _, p := range provinces {
		row := []string{
			string(p.ID),
			strconv.Itoa(int(p.Color.R)),
			strconv.Itoa(int(p.Color.G)),
			strconv.Itoa(int(p.Color.B)),
			string(p.Kind),
			formatFloat(p.Centroid.X),
			formatFloat(p.Centroid.Y),
			strconv.Itoa(int(p.BiomeColor.R)),
			strconv.Itoa(int(p.BiomeColor.G)),
			strconv.Itoa(int(p.BiomeColor.B)),
			p.BiomeID,
			p.BiomeName,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

var territoryCSVHeader = []string{"territory_id", "R", "G", "B", "territory_type", "x", "y"}

// WriteTerritoryCSV writes one row per territory (spec.md §6 "Territory CSV").
func WriteTerritoryCSV(path string, territories []region.Territory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(territoryCSVHeader); err != nil {
		return err
	}
	for _, t := range territories {
		row := []string{
			string(t.ID),
			strconv.Itoa(int(t.Color.R)),
			strconv.Itoa(int(t.Color.G)),
			strconv.Itoa(int(t.Color.B)),
			string(t.Kind),
			formatFloat(t.Centroid.X),
			formatFloat(t.Centroid.Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type territoryDoc struct {
	TerritoryID string      `json:"territory_id"`
	Provinces   []region.ID `json:"provinces"`
}

// WriteTerritoryJSON writes one pretty-printed <territory_id>.json file per
// territory into dir (spec.md §6 "Territory JSON (per territory)").
func WriteTerritoryJSON(dir string, territories []region.Territory) error {
	for _, t := range territories {
		doc := territoryDoc{TerritoryID: string(t.ID), Provinces: t.ProvinceIDs}
		data, err := json.MarshalIndent(doc, "", "    ")
		if err != nil {
			return err
		}
		path := filepath.Join(dir, string(t.ID)+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("export: write %s: %w", path, err)
		}
	}
	return nil
}

type vertexDoc struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

type edgeDoc struct {
	ID      int  `json:"id"`
	V1      int  `json:"v1"`
	V2      int  `json:"v2"`
	IsRiver bool `json:"is_river"`
}

type provinceEdgesDoc struct {
	ID    string `json:"id"`
	Edges []int  `json:"edges"`
}

type shapesDoc struct {
	Vertices  []vertexDoc        `json:"vertices"`
	Edges     []edgeDoc          `json:"edges"`
	Provinces []provinceEdgesDoc `json:"provinces"`
}

// WriteProvinceShapesJSON writes the planar graph as minified JSON (spec.md
// §6 "Province shapes JSON"): vertices, edges with is_river, and each
// province's incident edge IDs in the order graph.Extract discovered them.
func WriteProvinceShapesJSON(path string, g *graph.Graph, provinces []region.Province) error {
	doc := shapesDoc{
		Vertices: make([]vertexDoc, len(g.Vertices)),
		Edges:    make([]edgeDoc, len(g.Edges)),
	}
	for i, v := range g.Vertices {
		doc.Vertices[i] = vertexDoc{ID: i, X: v.X, Y: v.Y}
	}
	for i, e := range g.Edges {
		doc.Edges[i] = edgeDoc{ID: i, V1: int(e.V1), V2: int(e.V2), IsRiver: e.IsRiver}
	}
	for _, p := range provinces {
		edgeIDs := g.RegionEdges[p.Index]
		ints := make([]int, len(edgeIDs))
		for i, eid := range edgeIDs {
			ints[i] = int(eid)
		}
		doc.Provinces = append(doc.Provinces, provinceEdgesDoc{ID: string(p.ID), Edges: ints})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// Manifest lists the relative paths of every artifact written by a
// generation run, plus a version string (spec.md §6 "Master manifest").
type Manifest struct {
	Version          string `json:"version"`
	ProvinceCSV      string `json:"province_csv,omitempty"`
	TerritoryCSV     string `json:"territory_csv,omitempty"`
	TerritoryJSONDir string `json:"territory_json_dir,omitempty"`
	ShapesJSON       string `json:"shapes_json,omitempty"`
	ProvinceMapPNG   string `json:"province_map_png,omitempty"`
	TerritoryMapPNG  string `json:"territory_map_png,omitempty"`
	BiomeMapPNG      string `json:"biome_map_png,omitempty"`
}

// WriteManifest writes m as pretty-printed JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
