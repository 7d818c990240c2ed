package rawimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/texelfit/bcn/internal/bcn"
)

func TestFromImageConvertsPixels(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	img := FromImage(src)
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	if got := img.Pix[0]; got != (bcn.ColorRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("pixel (0,0) = %+v, want {10 20 30 255}", got)
	}
	if got := img.Pix[3]; got != (bcn.ColorRGBA{R: 200, G: 100, B: 50, A: 128}) {
		t.Fatalf("pixel (1,1) = %+v, want {200 100 50 128}", got)
	}
}

func TestToImageRoundTripsFromImage(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 5, A: 255})
		}
	}

	img := FromImage(src)
	out := img.ToImage()
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := src.NRGBAAt(x, y)
			got := out.NRGBAAt(x, y)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestEncodeDecodeRoundTrips(t *testing.T) {
	t.Parallel()

	img := New(4, 3)
	for i := range img.Pix {
		img.Pix[i] = bcn.ColorRGBA{R: uint8(i), G: uint8(i * 2), B: uint8(i * 3), A: 255}
	}

	data := img.Encode()
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Width != img.Width || decoded.Height != img.Height {
		t.Fatalf("decoded size = %dx%d, want %dx%d", decoded.Width, decoded.Height, img.Width, img.Height)
	}
	for i := range img.Pix {
		if decoded.Pix[i] != img.Pix[i] {
			t.Fatalf("pixel %d = %+v, want %+v", i, decoded.Pix[i], img.Pix[i])
		}
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("not an image container at all"))
	if err == nil {
		t.Fatal("expected error for invalid magic")
	}
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	t.Parallel()

	img := New(2, 2)
	data := img.Encode()
	_, err := Decode(data[:len(data)-1])
	if err == nil {
		t.Fatal("expected error for truncated payload")
	}
}
