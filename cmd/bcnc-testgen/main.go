package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/rawimage"
	"github.com/texelfit/bcn/internal/testpattern"
)

type Options struct {
	Args struct {
		OutputDir string `positional-arg-name:"output" description:"Output directory for generated .raw files" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	MinSize int `short:"m" long:"min-size" description:"Minimum image size" default:"16"`
	MaxSize int `short:"M" long:"max-size" description:"Maximum image size" default:"256"`
	Count   int `short:"c" long:"count" description:"Number of images to generate" default:"10"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "bcnc-testgen"
	parser.Usage = "[OPTIONS] <output>"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(&opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *Options) error {
	if opts.MinSize <= 0 || opts.MaxSize <= 0 {
		return fmt.Errorf("min-size and max-size must be positive")
	}
	if opts.MinSize > opts.MaxSize {
		return fmt.Errorf("min-size must be <= max-size")
	}
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}

	if err := os.MkdirAll(opts.Args.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	//nolint:gosec // Non-crypto randomness is fine for test data.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < opts.Count; i++ {
		size := opts.MinSize + rng.Intn(opts.MaxSize-opts.MinSize+1)
		if err := generateImage(opts.Args.OutputDir, i, size, rng); err != nil {
			return fmt.Errorf("failed to generate image %d: %w", i, err)
		}
	}

	fmt.Printf("Successfully generated %d images in %s\n", opts.Count, opts.Args.OutputDir)
	return nil
}

// generateImage picks one of the canned synthetic patterns and writes it
// out as a raw RGBA container, cycling through kinds so a batch exercises
// flat regions, gradients, alpha transitions and worst-case noise alike.
func generateImage(outputDir string, index, size int, rng *rand.Rand) error {
	a := bcn.ColorRGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: 255}
	b := bcn.ColorRGBA{R: randByte(rng), G: randByte(rng), B: randByte(rng), A: randByte(rng)}

	var img *rawimage.Image
	var kind string
	switch index % 4 {
	case 0:
		img = testpattern.Checkerboard(size, size, max(1, size/8), a, b)
		kind = "checker"
	case 1:
		img = testpattern.Gradient(size, size, a, b)
		kind = "gradient"
	case 2:
		img = testpattern.AlphaRamp(size, size, a)
		kind = "alpharamp"
	default:
		img = testpattern.Noise(size, size, rng.Int63())
		kind = "noise"
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("test_%03d_%s_%dx%d.raw", index, kind, size, size))
	if err := os.WriteFile(filename, img.Encode(), 0o644); err != nil {
		return fmt.Errorf("failed to write raw image: %w", err)
	}
	return nil
}

func randByte(rng *rand.Rand) uint8 {
	//nolint:gosec // Intn(256) is always within uint8.
	return uint8(rng.Intn(256))
}
