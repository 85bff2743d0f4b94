// Package export encodes sampled grids as images: heights as 16-bit
// grayscale PNG or TIFF, layer weights as RGBA PNG with four layers per image.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/vk/noisegridgo/internal/sampler"
	"golang.org/x/image/tiff"
)

// Format is a height image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
)

// ParseFormat reads a format name. "tif" is accepted for TIFF.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("unknown image format %q, expected png or tiff", s)
}

// Ext is the file extension of the format, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// LayersPerImage is the number of layer weights packed into one RGBA image.
const LayersPerImage = 4

// HeightImage quantizes a height grid to 16 bits. Values are clamped to
// [0, 1]; row j of the grid becomes image row j.
func HeightImage(g *sampler.Grid) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.Res, g.Res))
	for j := range g.Res {
		for i := range g.Res {
			img.SetGray16(i, j, color.Gray16{Y: quantize16(g.At(i, j))})
		}
	}
	return img
}

// WriteHeights encodes g in format f.
func WriteHeights(w io.Writer, g *sampler.Grid, f Format) error {
	img := HeightImage(g)
	var err error
	switch f {
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported height format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encoding heights as %s: %w", f, err)
	}
	return nil
}

// WeightImages packs layer weights into RGBA images, layers 0-3 in the
// first image's R, G, B and A channels, 4-7 in the second, and so on.
// Unused channels are 0.
func WeightImages(wm *sampler.WeightMap) []*image.NRGBA {
	count := (wm.Layers + LayersPerImage - 1) / LayersPerImage
	imgs := make([]*image.NRGBA, count)
	for k := range imgs {
		imgs[k] = image.NewNRGBA(image.Rect(0, 0, wm.Res, wm.Res))
	}
	for j := range wm.Res {
		for i := range wm.Res {
			cell := wm.Cell(i, j)
			for k, img := range imgs {
				var ch [LayersPerImage]uint8
				for c := range ch {
					if l := k*LayersPerImage + c; l < len(cell) {
						ch[c] = quantize8(cell[l])
					}
				}
				img.SetNRGBA(i, j, color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]})
			}
		}
	}
	return imgs
}

// WriteWeights encodes one packed weight image as PNG.
func WriteWeights(w io.Writer, img *image.NRGBA) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding weights: %w", err)
	}
	return nil
}

func quantize16(v float64) uint16 {
	if math.IsNaN(v) {
		return 0
	}
	return uint16(math.Round(math.Max(0, math.Min(1, v)) * math.MaxUint16))
}

func quantize8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * math.MaxUint8))
}
