package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/worldmapgen/internal/graph"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

func sampleProvinces() []region.Province {
	return []region.Province{
		{
			ID: "PROV0001", Kind: region.KindLand,
			Color:      region.Color{R: 10, G: 20, B: 30},
			Centroid:   region.Centroid{X: 1.2, Y: 3.456},
			BiomeColor: region.Color{R: 1, G: 2, B: 3},
			BiomeID:    "forest", BiomeName: "Forest",
		},
	}
}

func TestWriteProvinceCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provinces.csv")
	require.NoError(t, WriteProvinceCSV(path, sampleProvinces()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Equal(t, "province_id;R;G;B;province_type;x;y;Biome_R;Biome_G;Biome_B;Biome_ID;Biome_Name", lines[0])
	require.Equal(t, "PROV0001;10;20;30;land;1.20;3.46;1;2;3;forest;Forest", lines[1])
}

func TestWriteTerritoryCSVAndJSON(t *testing.T) {
	dir := t.TempDir()
	territories := []region.Territory{
		{ID: "TERR001", Kind: region.KindLand, Color: region.Color{R: 5, G: 6, B: 7}, Centroid: region.Centroid{X: 2, Y: 3}, ProvinceIDs: []region.ID{"PROV0001", "PROV0002"}},
	}

	csvPath := filepath.Join(dir, "territories.csv")
	require.NoError(t, WriteTerritoryCSV(csvPath, territories))
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Equal(t, "territory_id;R;G;B;territory_type;x;y", lines[0])
	require.Equal(t, "TERR001;5;6;7;land;2.00;3.00", lines[1])

	require.NoError(t, WriteTerritoryJSON(dir, territories))
	jsonData, err := os.ReadFile(filepath.Join(dir, "TERR001.json"))
	require.NoError(t, err)
	var doc territoryDoc
	require.NoError(t, json.Unmarshal(jsonData, &doc))
	require.Equal(t, "TERR001", doc.TerritoryID)
	require.Equal(t, []region.ID{"PROV0001", "PROV0002"}, doc.Provinces)
}

func TestWriteProvinceShapesJSON(t *testing.T) {
	g := &graph.Graph{
		Vertices: []graph.Vertex{{X: 0, Y: 0}, {X: 5, Y: 0}},
		Edges:    []graph.Edge{{V1: 0, V2: 1, IsRiver: true}},
		RegionEdges: map[region.Index][]graph.EdgeID{
			0: {0},
		},
	}
	provinces := []region.Province{{Index: 0, ID: "PROV0001"}}

	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.json")
	require.NoError(t, WriteProvinceShapesJSON(path, g, provinces))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(data), "\n"), "shapes JSON should be minified")

	var doc shapesDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Vertices, 2)
	require.Len(t, doc.Edges, 1)
	require.True(t, doc.Edges[0].IsRiver)
	require.Equal(t, []int{0}, doc.Provinces[0].Edges)
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	m := Manifest{Version: "1.0", ProvinceCSV: "provinces.csv"}
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, m, got)
}
