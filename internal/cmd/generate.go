package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/worldmapgen/internal/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate <input-dir>",
	Short: "Run the full pipeline: provinces, territories, planar graph, and rivers",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		inputDir := args[0]
		outputDir := viper.GetString("output-dir")
		cfg := config.FromViper(viper.GetViper())

		res, err := runFull(defaultMapInputs(inputDir), cfg)
		if err != nil {
			return err
		}
		if _, err := writeOutputs(outputDir, res); err != nil {
			return err
		}
		fmt.Printf("wrote %d provinces, %d territories to %s\n",
			len(res.provinces.Provinces), len(res.territories.Territories), outputDir)
		if res.rivers != nil {
			fmt.Printf("%d river edges\n", len(res.rivers.RiverEdges))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
