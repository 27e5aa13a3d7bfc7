package cmd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/worldmapgen/internal/biome"
	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/export"
	"github.com/MeKo-Tech/worldmapgen/internal/graph"
	"github.com/MeKo-Tech/worldmapgen/internal/pipeline"
	"github.com/MeKo-Tech/worldmapgen/internal/raster"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
	"github.com/MeKo-Tech/worldmapgen/internal/river"
)

// mapInputs are the conventional filenames worldmapgen looks for inside an
// input map directory; every file is optional except that at least one of
// boundary/land must be present (spec.md §7 InputMissing).
type mapInputs struct {
	BoundaryPath  string
	LandPath      string
	BiomePath     string
	HeightmapPath string
	PalettePath   string
}

func defaultMapInputs(dir string) mapInputs {
	return mapInputs{
		BoundaryPath:  filepath.Join(dir, "boundary.png"),
		LandPath:      filepath.Join(dir, "land.png"),
		BiomePath:     filepath.Join(dir, "biome.png"),
		HeightmapPath: filepath.Join(dir, "heightmap.png"),
		PalettePath:   filepath.Join(dir, "palette.json"),
	}
}

// runResult bundles everything a run produces, for commands that only need
// part of it (province-only vs. full generation).
type runResult struct {
	masks       *pipeline.MaskSet
	provinces   *pipeline.ProvinceOutput
	territories *pipeline.TerritoryOutput
	graph       *graph.Graph
	rivers      *river.Result
}

// runProvincesOnly derives masks and generates provinces, skipping
// territories, graph extraction, and rivers.
func runProvincesOnly(in mapInputs, cfg config.Generation) (*runResult, error) {
	boundaryImg, err := raster.Load(in.BoundaryPath)
	if err != nil {
		return nil, err
	}
	landImg, err := raster.Load(in.LandPath)
	if err != nil {
		return nil, err
	}
	masks, err := pipeline.DeriveMasks(boundaryImg, landImg, cfg)
	if err != nil {
		return nil, err
	}

	biomeImg, err := raster.Load(in.BiomePath)
	if err != nil {
		return nil, err
	}
	palette, err := biome.Load(in.PalettePath)
	if err != nil {
		return nil, err
	}
	if palette.Empty() {
		slog.Warn("biome palette missing or empty; province biomes will default to unknown",
			"path", in.PalettePath, "biome_id", region.DefaultBiomeID)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	provOut, err := pipeline.GenerateProvinces(masks, biomeImg, palette, cfg, rng)
	if err != nil {
		return nil, err
	}

	return &runResult{masks: masks, provinces: provOut}, nil
}

// runFull runs the entire pipeline: provinces, territories, the planar
// graph, and (if a heightmap is present) rivers.
func runFull(in mapInputs, cfg config.Generation) (*runResult, error) {
	res, err := runProvincesOnly(in, cfg)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	territories, err := pipeline.GenerateTerritories(res.masks, res.provinces.Provinces, cfg, rng)
	if err != nil {
		return nil, err
	}
	res.territories = territories

	g := graph.Extract(res.provinces.Grid)
	res.graph = g

	heightImg, err := raster.Load(in.HeightmapPath)
	if err != nil {
		return nil, err
	}
	if heightImg != nil {
		kindOf := kindLookup(res.provinces.Provinces)
		heightmap := raster.ToGray(heightImg)
		riverRes := river.Generate(g, heightmap, kindOf, river.Options{
			Threshold:        cfg.RiverThreshold,
			BlurSigma:        cfg.RiverBlurSigma,
			SourcePercentile: cfg.RiverSourcePctile,
		})
		riverRes.ApplyTo(g)
		res.rivers = riverRes
	}

	return res, nil
}

func kindLookup(provinces []region.Province) func(region.Index) region.Kind {
	byIndex := make(map[region.Index]region.Kind, len(provinces))
	for _, p := range provinces {
		byIndex[p.Index] = p.Kind
	}
	return func(idx region.Index) region.Kind { return byIndex[idx] }
}

// writeOutputs exports every artifact res holds into outDir, returning the
// manifest written alongside them.
func writeOutputs(outDir string, res *runResult) (*export.Manifest, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("cmd: create %s: %w", outDir, err)
	}

	m := &export.Manifest{Version: "1.0"}

	provinceColorOf := func(idx region.Index) (region.Color, bool) {
		for _, p := range res.provinces.Provinces {
			if p.Index == idx {
				return p.Color, true
			}
		}
		return region.Color{}, false
	}
	biomeColorOf := func(idx region.Index) (region.Color, bool) {
		for _, p := range res.provinces.Provinces {
			if p.Index == idx {
				return p.BiomeColor, true
			}
		}
		return region.Color{}, false
	}

	m.ProvinceCSV = "provinces.csv"
	if err := export.WriteProvinceCSV(filepath.Join(outDir, m.ProvinceCSV), res.provinces.Provinces); err != nil {
		return nil, err
	}

	m.ProvinceMapPNG = "province_map.png"
	provinceImg := pipeline.RenderColorImage(res.provinces.Grid, provinceColorOf)
	if err := raster.SavePNG(filepath.Join(outDir, m.ProvinceMapPNG), provinceImg); err != nil {
		return nil, err
	}

	m.BiomeMapPNG = "biome_map.png"
	biomeImg := pipeline.RenderColorImage(res.provinces.Grid, biomeColorOf)
	if err := raster.SavePNG(filepath.Join(outDir, m.BiomeMapPNG), biomeImg); err != nil {
		return nil, err
	}

	if res.territories != nil {
		m.TerritoryCSV = "territories.csv"
		if err := export.WriteTerritoryCSV(filepath.Join(outDir, m.TerritoryCSV), res.territories.Territories); err != nil {
			return nil, err
		}

		m.TerritoryJSONDir = "territories"
		if err := os.MkdirAll(filepath.Join(outDir, m.TerritoryJSONDir), 0o755); err != nil {
			return nil, err
		}
		if err := export.WriteTerritoryJSON(filepath.Join(outDir, m.TerritoryJSONDir), res.territories.Territories); err != nil {
			return nil, err
		}

		m.TerritoryMapPNG = "territory_map.png"
		territoryColorOf := pipeline.ProvinceTerritoryColors(res.provinces.Grid, res.provinces.Provinces, res.territories.Territories)
		territoryImg := pipeline.RenderColorImage(res.provinces.Grid, territoryColorOf)
		if err := raster.SavePNG(filepath.Join(outDir, m.TerritoryMapPNG), territoryImg); err != nil {
			return nil, err
		}
	}

	if res.graph != nil {
		m.ShapesJSON = "shapes.json"
		if err := export.WriteProvinceShapesJSON(filepath.Join(outDir, m.ShapesJSON), res.graph, res.provinces.Provinces); err != nil {
			return nil, err
		}
	}

	if err := export.WriteManifest(filepath.Join(outDir, "manifest.json"), *m); err != nil {
		return nil, err
	}
	return m, nil
}
