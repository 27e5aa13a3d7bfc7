package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/worldmapgen/internal/config"
	"github.com/MeKo-Tech/worldmapgen/internal/geoexport"
	"github.com/MeKo-Tech/worldmapgen/internal/graph"
)

var provinceGeoJSON bool

var provinceCmd = &cobra.Command{
	Use:   "province <input-dir>",
	Short: "Generate provinces only (no territories, graph, or rivers)",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		inputDir := args[0]
		outputDir := viper.GetString("output-dir")
		cfg := config.FromViper(viper.GetViper())

		res, err := runProvincesOnly(defaultMapInputs(inputDir), cfg)
		if err != nil {
			return err
		}
		m, err := writeOutputs(outputDir, res)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d provinces to %s (%s)\n", len(res.provinces.Provinces), outputDir, m.ProvinceCSV)

		if provinceGeoJSON {
			g := graph.Extract(res.provinces.Grid)
			fc := geoexport.ProvincePolygons(g, res.provinces.Provinces)
			data, err := geoexport.MarshalFeatureCollection(fc)
			if err != nil {
				return err
			}
			path := filepath.Join(outputDir, "provinces.geojson")
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("cmd: write %s: %w", path, err)
			}
			fmt.Printf("wrote province polygons to %s\n", path)
		}
		return nil
	},
}

func init() {
	provinceCmd.Flags().BoolVar(&provinceGeoJSON, "geojson", false, "also trace province boundaries into a GeoJSON polygon file")
	rootCmd.AddCommand(provinceCmd)
}
