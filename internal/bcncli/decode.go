package bcncli

import (
	"fmt"
	"os"

	"github.com/texelfit/bcn/internal/batch"
	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/rawimage"
)

// CmdDecode decompresses a block stream back to a raw RGBA container.
type CmdDecode struct {
	Args struct {
		Input  string `positional-arg-name:"input" description:"Input compressed block stream" required:"yes"`
		Output string `positional-arg-name:"output" description:"Output raw RGBA container" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	Format   string `short:"f" long:"format" description:"Block format" default:"bc1" choice:"bc1" choice:"bc2" choice:"bc3" choice:"bc4" choice:"bc5"`
	Width    int    `short:"W" long:"width" description:"Image width in pixels" required:"yes"`
	Height   int    `short:"H" long:"height" description:"Image height in pixels" required:"yes"`
	Parallel bool   `short:"p" long:"parallel" description:"Split the image across GOMAXPROCS worker goroutines"`
}

// Execute runs the decode command.
func (c *CmdDecode) Execute(args []string) error {
	format, err := batch.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("--width and --height must be positive")
	}

	data, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	want := bcn.CompressedSize(format, c.Width, c.Height)
	if len(data) != want {
		return fmt.Errorf("input is %d bytes, want %d for a %dx%d %s image", len(data), want, c.Width, c.Height, format)
	}

	var pix []bcn.ColorRGBA
	if c.Parallel {
		pix = bcn.DecompressParallel(format, c.Width, c.Height, data)
	} else {
		pix = bcn.Decompress(format, c.Width, c.Height, data)
	}

	img := &rawimage.Image{Width: c.Width, Height: c.Height, Pix: pix}
	if err := os.WriteFile(c.Args.Output, img.Encode(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("decoded %s -> %dx%d raw RGBA\n", format, c.Width, c.Height)
	return nil
}
