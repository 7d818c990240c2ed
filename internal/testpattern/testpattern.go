// Package testpattern generates synthetic raw-RGBA images for exercising
// the bcn codec without needing a real image decoder: checkerboards,
// gradients, alpha ramps and noise, optionally rescaled with
// golang.org/x/image/draw's Catmull-Rom resampler.
package testpattern

import (
	"image"
	"math/rand"

	"golang.org/x/image/draw"

	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/rawimage"
)

// Checkerboard fills a square grid of alternating colours, cellSize texels
// per square.
func Checkerboard(width, height, cellSize int, a, b bcn.ColorRGBA) *rawimage.Image {
	if cellSize < 1 {
		cellSize = 1
	}
	img := rawimage.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			even := (x/cellSize+y/cellSize)%2 == 0
			c := b
			if even {
				c = a
			}
			img.Pix[y*width+x] = c
		}
	}
	return img
}

// Gradient interpolates linearly from top-left colour a to bottom-right
// colour b.
func Gradient(width, height int, a, b bcn.ColorRGBA) *rawimage.Image {
	img := rawimage.New(width, height)
	maxD := float64(width + height - 2)
	if maxD <= 0 {
		maxD = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := float64(x+y) / maxD
			img.Pix[y*width+x] = bcn.ColorRGBA{
				R: lerp8(a.R, b.R, t),
				G: lerp8(a.G, b.G, t),
				B: lerp8(a.B, b.B, t),
				A: lerp8(a.A, b.A, t),
			}
		}
	}
	return img
}

// AlphaRamp holds a flat colour with alpha sweeping 0..255 left to right
// across the full image width; every row is identical.
func AlphaRamp(width, height int, colour bcn.ColorRGBA) *rawimage.Image {
	img := rawimage.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := colour
			if width > 1 {
				c.A = uint8(255 * x / (width - 1))
			}
			img.Pix[y*width+x] = c
		}
	}
	return img
}

// Noise fills the image with uniform random RGBA, useful for stressing the
// cluster fitter's worst case (every texel in a block distinct).
func Noise(width, height int, seed int64) *rawimage.Image {
	//nolint:gosec // non-crypto randomness is fine for synthetic test data.
	rng := rand.New(rand.NewSource(seed))
	img := rawimage.New(width, height)
	for i := range img.Pix {
		img.Pix[i] = bcn.ColorRGBA{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
			A: uint8(rng.Intn(256)),
		}
	}
	return img
}

// Scale resizes img to width x height using the Catmull-Rom resampler.
func Scale(img *rawimage.Image, width, height int) *rawimage.Image {
	src := img.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return rawimage.FromImage(dst)
}

func lerp8(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
