package bcncli

import (
	"fmt"
	"time"

	"github.com/texelfit/bcn/internal/batch"
	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/testpattern"
)

// CmdBench measures encode throughput on a synthetic image, useful for
// comparing algorithms and the sequential vs. parallel code paths.
type CmdBench struct {
	Format     string `short:"f" long:"format" description:"Block format" default:"bc1" choice:"bc1" choice:"bc2" choice:"bc3" choice:"bc4" choice:"bc5"`
	Algorithm  string `short:"a" long:"algorithm" description:"Colour-fitting algorithm" default:"cluster_fit" choice:"range_fit" choice:"cluster_fit" choice:"iterative_cluster_fit"`
	Size       int    `short:"s" long:"size" description:"Width and height of the generated image, in texels" default:"256"`
	Iterations int    `short:"n" long:"iterations" description:"Number of encode passes to time" default:"10"`
	Parallel   bool   `short:"p" long:"parallel" description:"Split the image across GOMAXPROCS worker goroutines"`
}

// Execute runs the bench command.
func (c *CmdBench) Execute(args []string) error {
	format, err := batch.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if c.Size <= 0 {
		return fmt.Errorf("--size must be positive")
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("--iterations must be positive")
	}

	params := bcn.DefaultParams()
	switch c.Algorithm {
	case "range_fit":
		params.Algorithm = bcn.RangeFit
	case "iterative_cluster_fit":
		params.Algorithm = bcn.IterativeClusterFit
	default:
		params.Algorithm = bcn.ClusterFit
	}

	img := testpattern.Checkerboard(c.Size, c.Size, 4,
		bcn.ColorRGBA{R: 200, G: 80, B: 40, A: 255},
		bcn.ColorRGBA{R: 30, G: 90, B: 210, A: 200},
	)

	blocksPerImage := ((c.Size + 3) / 4) * ((c.Size + 3) / 4)

	start := time.Now()
	var out []byte
	for i := 0; i < c.Iterations; i++ {
		if c.Parallel {
			out = bcn.CompressParallel(format, img.Width, img.Height, img.Pix, params)
		} else {
			out = bcn.Compress(format, img.Width, img.Height, img.Pix, params)
		}
	}
	elapsed := time.Since(start)

	totalBlocks := float64(blocksPerImage) * float64(c.Iterations)
	blocksPerSec := totalBlocks / elapsed.Seconds()

	fmt.Printf("format=%s algorithm=%s size=%dx%d iterations=%d parallel=%v\n",
		format, c.Algorithm, c.Size, c.Size, c.Iterations, c.Parallel)
	fmt.Printf("total=%s avg=%s blocks/sec=%.0f output=%d bytes\n",
		elapsed, elapsed/time.Duration(c.Iterations), blocksPerSec, len(out))

	return nil
}
