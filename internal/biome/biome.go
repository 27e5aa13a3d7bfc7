// Package biome implements the Biome Resolver (C6, spec.md §4.6): loading a
// JSON color palette and resolving a sampled RGB color to the nearest biome
// record. Ported from logic/biome_manager.py's BiomeManager.
package biome

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// Record is one entry of the biome palette.
type Record struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Color [3]uint8      `json:"color"`
	color region.Color
}

// Palette is a loaded, resolvable set of biome records. The zero value is an
// empty palette: Resolve on it always returns the default unknown biome.
type Palette struct {
	records []Record
}

// Empty reports whether p has no records, i.e. Resolve will always return
// the default unknown biome. True for a nil Palette.
func (p *Palette) Empty() bool {
	return p == nil || len(p.records) == 0
}

// Load reads a JSON array of {id, name, color:[r,g,b]} records from path.
// A missing file is not an error (spec.md §7 PaletteMissing): it yields an
// empty palette, and the caller is expected to log a warning.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Palette{}, nil
		}
		return nil, fmt.Errorf("biome: open palette: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (*Palette, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("biome: decode palette: %w", err)
	}
	for i := range records {
		c := records[i].Color
		records[i].color = region.Color{R: c[0], G: c[1], B: c[2]}
	}
	return &Palette{records: records}, nil
}

// Resolve returns the biome record matching (r,g,b) exactly if one exists,
// otherwise the record with the nearest Euclidean color distance. The
// tolerance parameter is informational only (spec.md §4.6): it is accepted
// for API parity with the original but does not gate the nearest-neighbor
// fallback. Resolve always succeeds when the palette is non-empty; for an
// empty palette it returns the default unknown biome.
func (p *Palette) Resolve(c region.Color, tolerance float64) (id, name string, color region.Color) {
	if p == nil || len(p.records) == 0 {
		return region.DefaultBiomeID, region.DefaultBiomeName, region.Color{}
	}

	for _, b := range p.records {
		if b.color == c {
			return b.ID, b.Name, b.color
		}
	}

	best := p.records[0]
	bestDist := sqDist(c, best.color)
	for _, b := range p.records[1:] {
		d := sqDist(c, b.color)
		if d < bestDist {
			bestDist = d
			best = b
		}
	}
	return best.ID, best.Name, best.color
}

func sqDist(a, b region.Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
