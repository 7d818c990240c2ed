// Package bcncli implements the command-line interface for bcnc, the
// raw-RGBA BC1-BC5 block codec tool.
package bcncli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Root defines global CLI flags.
type Root struct{}

// Run parses arguments and executes the selected subcommand.
func Run(args []string) error {
	var root Root

	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	prog := parser.Name

	if _, err := parser.AddCommand(
		"encode",
		"Compress a raw RGBA image to a BC1-BC5 block stream",
		fmt.Sprintf(
			`Read a raw RGBA container and write its compressed block stream.

Examples:
  %s encode in.raw out.bc1 --format bc1
  %s encode in.raw out.bc3 --format bc3 --algorithm iterative_cluster_fit`,
			prog, prog,
		),
		&CmdEncode{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"decode",
		"Decompress a BC1-BC5 block stream back to raw RGBA",
		fmt.Sprintf(
			`Read a compressed block stream and write a raw RGBA container.

Examples:
  %s decode out.bc1 roundtrip.raw --format bc1 --width 256 --height 256`,
			prog,
		),
		&CmdDecode{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"batch",
		"Run a list of encode jobs from a YAML config file",
		fmt.Sprintf(
			`Run every job in a batch config, skipping unchanged ones.

Examples:
  %s batch jobs.yaml`,
			prog,
		),
		&CmdBatch{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"bench",
		"Measure encode throughput for a synthetic image",
		fmt.Sprintf(
			`Encode a generated image repeatedly and report blocks/sec.

Examples:
  %s bench --format bc1 --size 512 --iterations 20`,
			prog,
		),
		&CmdBench{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"version",
		"Print build metadata",
		fmt.Sprintf(`Show build information.

Examples:
  %s version`, prog),
		&CmdVersion{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}
