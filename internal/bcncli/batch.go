package bcncli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/texelfit/bcn/internal/batch"
)

// CmdBatch runs every job described by a YAML batch config file.
type CmdBatch struct {
	Args struct {
		Config string `positional-arg-name:"config" description:"Path to a batch job config file" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the batch command.
func (c *CmdBatch) Execute(args []string) error {
	data, err := os.ReadFile(c.Args.Config)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	jobs, err := batch.ParseJobs(data)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs found in %q", c.Args.Config)
	}

	baseDir := filepath.Dir(c.Args.Config)
	skipped, err := batch.RunAll(baseDir, jobs)
	if err != nil {
		return err
	}

	fmt.Printf("ran %d jobs (%d skipped, unchanged)\n", len(jobs), skipped)
	return nil
}
