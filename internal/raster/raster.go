// Package raster loads the input world-map images (land/ocean mask,
// boundary mask, biome color map, heightmap) and derives the boolean masks
// the rest of the pipeline operates on. Ported from image_loader.py and the
// mask-derivation prologue shared by generate_province_map /
// generate_territory_map in logic/province_generator.py /
// logic/territory_generator.py; BMP decoding support (golang.org/x/image/bmp)
// is added so "any image format" (PNG/JPEG/GIF/BMP) matches the original's
// Pillow-backed loader.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/MeKo-Tech/worldmapgen/internal/grid"
	"github.com/MeKo-Tech/worldmapgen/internal/region"
)

// Load decodes an image file in any of the registered formats
// (PNG/JPEG/GIF/BMP). A missing path returns (nil, nil): callers treat an
// absent optional input as "not supplied" rather than an error.
func Load(path string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", path, err)
	}
	return img, nil
}

// SavePNG writes img to path as a PNG, creating parent directories as
// needed is the caller's responsibility.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return nil
}

// ColorMatchMask returns a grid.Bool true wherever img's pixel equals target
// (exact RGB match, alpha ignored), matching config.OCEAN_COLOR /
// config.BOUNDARY_COLOR comparisons in the original.
func ColorMatchMask(img image.Image, target region.Color) *grid.Bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := grid.NewBool(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			c := region.Color{R: p.R, G: p.G, B: p.B}
			if c == target {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// Dimensions returns an image's pixel width and height.
func Dimensions(img image.Image) (w, h int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// RGBAt samples an RGB triple from img at a grid coordinate, dropping alpha
// and any extra channels (spec.md §4.6's biome sampling: grayscale biome
// images broadcast to RGB, images with an alpha channel drop it).
func RGBAt(img image.Image, x, y int) region.Color {
	b := img.Bounds()
	p := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
	return region.Color{R: p.R, G: p.G, B: p.B}
}

// ToGray converts img to a luminance grayscale image (for heightmap
// sampling), matching PIL's Image.convert("L") used in image_loader.py.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
