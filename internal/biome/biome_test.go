package biome

import (
	"strings"
	"testing"

	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

const testPalette = `[
	{"id":"forest","name":"Forest","color":[20,120,20]},
	{"id":"desert","name":"Desert","color":[230,200,120]}
]`

func TestResolveExactMatch(t *testing.T) {
	p, err := decode(strings.NewReader(testPalette))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, name, c := p.Resolve(region.Color{R: 20, G: 120, B: 20}, 10)
	if id != "forest" || name != "Forest" {
		t.Fatalf("expected exact match forest, got %s/%s", id, name)
	}
	if c != (region.Color{R: 20, G: 120, B: 20}) {
		t.Fatalf("unexpected color %v", c)
	}
}

func TestResolveNearestFallback(t *testing.T) {
	p, err := decode(strings.NewReader(testPalette))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Closer to forest than desert.
	id, _, _ := p.Resolve(region.Color{R: 25, G: 115, B: 25}, 10)
	if id != "forest" {
		t.Fatalf("expected nearest match forest, got %s", id)
	}
}

func TestResolveEmptyPaletteReturnsUnknown(t *testing.T) {
	p := &Palette{}
	id, name, c := p.Resolve(region.Color{R: 1, G: 2, B: 3}, 10)
	if id != region.DefaultBiomeID || name != region.DefaultBiomeName {
		t.Fatalf("expected default unknown biome, got %s/%s", id, name)
	}
	if c != (region.Color{}) {
		t.Fatalf("expected zero color for unknown biome, got %v", c)
	}
}

func TestLoadMissingFileYieldsEmptyPalette(t *testing.T) {
	p, err := Load("/nonexistent/biomes.json")
	if err != nil {
		t.Fatalf("expected no error for missing palette, got %v", err)
	}
	if len(p.records) != 0 {
		t.Fatalf("expected empty palette")
	}
}
