package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

func TestColorMatchMask(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	ocean := region.Color{R: 30, G: 80, B: 180}
	img.Set(0, 0, color.RGBA{R: 30, G: 80, B: 180, A: 255})
	img.Set(1, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	img.Set(2, 0, color.RGBA{R: 30, G: 80, B: 180, A: 255})

	m := ColorMatchMask(img, ocean)
	if !m.At(0, 0) || m.At(1, 0) || !m.At(2, 0) {
		t.Fatalf("unexpected mask: %v", m.Data)
	}
}

func TestRGBAtDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	c := RGBAt(img, 0, 0)
	if c != (region.Color{R: 10, G: 20, B: 30}) {
		t.Fatalf("unexpected color %v", c)
	}
}

func TestLoadMissingPathReturnsNilNoError(t *testing.T) {
	img, err := Load("")
	if err != nil || img != nil {
		t.Fatalf("expected nil,nil for empty path, got %v,%v", img, err)
	}
	img, err = Load("/nonexistent/file.png")
	if err != nil || img != nil {
		t.Fatalf("expected nil,nil for missing file, got %v,%v", img, err)
	}
}

func TestToGrayConvertsRGB(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	gray := ToGray(img)
	if gray.GrayAt(0, 0).Y == 0 {
		t.Fatalf("expected bright gray pixel for white input")
	}
}
