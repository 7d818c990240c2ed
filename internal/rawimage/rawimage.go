// Package rawimage is a minimal width/height/RGBA pixel container used to
// hand raw buffers to and from the bcn codec without pulling in any file
// format decoder. Containers like DDS, PNG or EDDS stay outside this
// module; callers that need them convert to/from image.Image themselves.
package rawimage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/texelfit/bcn/internal/bcn"
)

// Image is a width x height grid of 8bpc RGBA texels, row-major.
type Image struct {
	Width, Height int
	Pix           []bcn.ColorRGBA
}

// New allocates a zeroed image of the given dimensions.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]bcn.ColorRGBA, width*height),
	}
}

// FromImage converts any image.Image into a raw RGBA buffer.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	img := New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			img.Pix[y*img.Width+x] = bcn.ColorRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return img
}

// ToImage converts the raw buffer to a standard library image.NRGBA.
func (img *Image) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pix[y*img.Width+x]
			out.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return out
}

// rawMagic identifies the tiny container format Encode/Decode use to persist
// a raw image to disk: 4-byte magic, uint32 width, uint32 height, then
// width*height*4 bytes of RGBA pixels, all little-endian. It exists only
// so cmd/bcnc and cmd/bcnc-testgen can round-trip buffers through a file
// without depending on a real image codec.
const rawMagic = "RIMG"

// Encode serialises img to the raw container format.
func (img *Image) Encode() []byte {
	out := make([]byte, 12+len(img.Pix)*4)
	copy(out[0:4], rawMagic)
	putUint32(out[4:8], uint32(img.Width))
	putUint32(out[8:12], uint32(img.Height))
	for i, c := range img.Pix {
		o := 12 + i*4
		out[o] = c.R
		out[o+1] = c.G
		out[o+2] = c.B
		out[o+3] = c.A
	}
	return out
}

// Decode parses the raw container format produced by Encode.
func Decode(data []byte) (*Image, error) {
	if len(data) < 12 || string(data[0:4]) != rawMagic {
		return nil, fmt.Errorf("rawimage: not a raw image container")
	}
	width := int(getUint32(data[4:8]))
	height := int(getUint32(data[8:12]))
	want := 12 + width*height*4
	if len(data) != want {
		return nil, fmt.Errorf("rawimage: truncated container, have %d bytes, want %d", len(data), want)
	}

	img := New(width, height)
	for i := range img.Pix {
		o := 12 + i*4
		img.Pix[i] = bcn.ColorRGBA{
			R: data[o],
			G: data[o+1],
			B: data[o+2],
			A: data[o+3],
		}
	}
	return img, nil
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
