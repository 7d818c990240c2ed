package bcncli

import (
	"fmt"
	"os"

	"github.com/texelfit/bcn/internal/batch"
	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/rawimage"
)

// CmdEncode compresses a single raw RGBA image to a block stream.
type CmdEncode struct {
	Args struct {
		Input  string `positional-arg-name:"input" description:"Input raw RGBA container" required:"yes"`
		Output string `positional-arg-name:"output" description:"Output compressed block stream" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	Format    string  `short:"f" long:"format" description:"Block format" default:"bc1" choice:"bc1" choice:"bc2" choice:"bc3" choice:"bc4" choice:"bc5"`
	Algorithm string  `short:"a" long:"algorithm" description:"Colour-fitting algorithm" default:"cluster_fit" choice:"range_fit" choice:"cluster_fit" choice:"iterative_cluster_fit"`
	Uniform   bool    `short:"u" long:"uniform-weights" description:"Use equal R/G/B error weights instead of the perceptual default"`
	WeighByA  bool    `long:"weigh-by-alpha" description:"Scale point-set weights by texel alpha"`
	Parallel  bool    `short:"p" long:"parallel" description:"Split the image across GOMAXPROCS worker goroutines"`
}

// Execute runs the encode command.
func (c *CmdEncode) Execute(args []string) error {
	format, err := batch.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	params := bcn.DefaultParams()
	if c.Uniform {
		params.Weights = bcn.WeightsUniform
	}
	switch c.Algorithm {
	case "range_fit":
		params.Algorithm = bcn.RangeFit
	case "iterative_cluster_fit":
		params.Algorithm = bcn.IterativeClusterFit
	default:
		params.Algorithm = bcn.ClusterFit
	}
	params.WeighColourByAlpha = c.WeighByA

	data, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	img, err := rawimage.Decode(data)
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	var compressed []byte
	if c.Parallel {
		compressed = bcn.CompressParallel(format, img.Width, img.Height, img.Pix, params)
	} else {
		compressed = bcn.Compress(format, img.Width, img.Height, img.Pix, params)
	}

	if err := os.WriteFile(c.Args.Output, compressed, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Printf("encoded %dx%d %s -> %d bytes\n", img.Width, img.Height, format, len(compressed))
	return nil
}
