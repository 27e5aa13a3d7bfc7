// Command worldmapgen turns a raster world map into provinces, territories,
// a planar subdivision graph, and river annotations.
package main

import "github.com/MeKo-Tech/worldmapgen/internal/cmd"

func main() {
	cmd.Execute()
}
