// Package config provides a typed view over the viper-backed configuration
// keys recognized by worldmapgen (spec.md §6 "Configuration keys"), the same
// bind-flags-then-read-through-viper pattern the teacher repo uses in
// internal/cmd/root.go and internal/cmd/generate.go.
package config

import "github.com/spf13/viper"

// RGB is a plain (R,G,B) triple read from config, e.g. "OCEAN_COLOR".
type RGB struct {
	R, G, B uint8
}

// Gray is a single-channel value for a single-channel boundary image.
type Gray struct {
	V uint8
}

// IDRange bundles a prefix and an inclusive [Start, End] numbering window
// for one region kind's NumberSeries (logic/numb_gen.py).
type IDRange struct {
	Prefix string
	Start  int
	End    int
}

// Generation holds every tunable referenced anywhere in spec.md §4 and §6.
type Generation struct {
	OceanColor     RGB
	BoundaryColor  RGB
	BoundaryIsGray bool
	BoundaryGray   Gray

	ProvinceID  IDRange
	TerritoryID IDRange

	ProvinceLandPoints int
	ProvinceSeaPoints  int
	TerritoryLandPoints int
	TerritorySeaPoints  int

	BiomeTolerance float64

	RiverThreshold    float64
	RiverBlurSigma    float32
	RiverSourcePctile float64

	// Seed seeds the jittered grid seeder's PRNG (spec.md §4.2). The value,
	// including the default 0, is passed to rand.NewSource unchanged; this
	// package never calls time.Now itself.
	Seed int64
}

// Defaults mirrors the original Python's config.py defaults and the slider
// defaults referenced in spec.md §6.
func Defaults() Generation {
	return Generation{
		OceanColor:    RGB{R: 30, G: 80, B: 180},
		BoundaryColor: RGB{R: 0, G: 0, B: 0},

		ProvinceID:  IDRange{Prefix: "PROV", Start: 1, End: 9999},
		TerritoryID: IDRange{Prefix: "TERR", Start: 1, End: 999},

		ProvinceLandPoints: 200,
		ProvinceSeaPoints:  50,
		TerritoryLandPoints: 20,
		TerritorySeaPoints:  5,

		BiomeTolerance: 10.0,

		RiverThreshold:    10.0,
		RiverBlurSigma:    3.0,
		RiverSourcePctile: 60.0,
	}
}

// FromViper reads Generation from top-level viper keys, falling back to
// Defaults() for anything unset. Keys are the lowercase configuration names
// ("ocean_color", "province_id_prefix", ...); colors are integer lists
// ("ocean_color" takes 3 values, "boundary_color" takes 3 or 1).
func FromViper(v *viper.Viper) Generation {
	cfg := Defaults()

	if v.IsSet("ocean_color") {
		c := v.GetIntSlice("ocean_color")
		if len(c) == 3 {
			cfg.OceanColor = RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}
		}
	}
	if v.IsSet("boundary_color") {
		c := v.GetIntSlice("boundary_color")
		switch len(c) {
		case 1:
			cfg.BoundaryIsGray = true
			cfg.BoundaryGray = Gray{V: uint8(c[0])}
		case 3:
			cfg.BoundaryColor = RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}
		}
	}

	if v.IsSet("province_id_prefix") {
		cfg.ProvinceID.Prefix = v.GetString("province_id_prefix")
	}
	if v.IsSet("province_id_start") {
		cfg.ProvinceID.Start = v.GetInt("province_id_start")
	}
	if v.IsSet("province_id_end") {
		cfg.ProvinceID.End = v.GetInt("province_id_end")
	}

	if v.IsSet("territory_id_prefix") {
		cfg.TerritoryID.Prefix = v.GetString("territory_id_prefix")
	}
	if v.IsSet("territory_id_start") {
		cfg.TerritoryID.Start = v.GetInt("territory_id_start")
	}
	if v.IsSet("territory_id_end") {
		cfg.TerritoryID.End = v.GetInt("territory_id_end")
	}

	if v.IsSet("province_land_points") {
		cfg.ProvinceLandPoints = v.GetInt("province_land_points")
	}
	if v.IsSet("province_sea_points") {
		cfg.ProvinceSeaPoints = v.GetInt("province_sea_points")
	}
	if v.IsSet("territory_land_points") {
		cfg.TerritoryLandPoints = v.GetInt("territory_land_points")
	}
	if v.IsSet("territory_sea_points") {
		cfg.TerritorySeaPoints = v.GetInt("territory_sea_points")
	}

	if v.IsSet("biome_tolerance") {
		cfg.BiomeTolerance = v.GetFloat64("biome_tolerance")
	}

	if v.IsSet("river_threshold") {
		cfg.RiverThreshold = v.GetFloat64("river_threshold")
	}
	if v.IsSet("river_blur_sigma") {
		cfg.RiverBlurSigma = float32(v.GetFloat64("river_blur_sigma"))
	}
	if v.IsSet("river_source_percentile") {
		cfg.RiverSourcePctile = v.GetFloat64("river_source_percentile")
	}

	if v.IsSet("seed") {
		cfg.Seed = v.GetInt64("seed")
	}

	return cfg
}
