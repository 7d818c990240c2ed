// Package batch runs a list of raw-image -> compressed-block-stream jobs
// described by a YAML config file, one bcn.Params per job, with an
// xxhash-keyed cache that skips jobs whose inputs haven't changed since
// the last run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/rawimage"
)

// JobParams mirrors bcn.Params with YAML tags and defaults, since the
// codec's own Params has no non-zero default (its zero value is
// RangeFit with zero weights, not a usable configuration).
type JobParams struct {
	Algorithm          string     `yaml:"algorithm" default:"cluster_fit"`
	Weights            [3]float32 `yaml:"weights" default:"[0.2126,0.7152,0.0722]"`
	WeighColourByAlpha bool       `yaml:"weigh_colour_by_alpha"`
}

// ToParams converts the YAML-facing JobParams to bcn.Params.
func (p JobParams) ToParams() (bcn.Params, error) {
	var algo bcn.Algorithm
	switch strings.ToLower(p.Algorithm) {
	case "", "range_fit":
		algo = bcn.RangeFit
	case "cluster_fit":
		algo = bcn.ClusterFit
	case "iterative_cluster_fit":
		algo = bcn.IterativeClusterFit
	default:
		return bcn.Params{}, fmt.Errorf("unknown algorithm %q", p.Algorithm)
	}
	return bcn.Params{
		Algorithm:          algo,
		Weights:            bcn.Weights(p.Weights),
		WeighColourByAlpha: p.WeighColourByAlpha,
	}, nil
}

// Job is one raw-image -> compressed-block-stream conversion.
type Job struct {
	Name          string    `yaml:"name"`
	Format        string    `yaml:"format" default:"bc1"`
	Input         string    `yaml:"input"`
	Output        string    `yaml:"output"`
	Params        JobParams `yaml:"params"`
	SkipUnchanged bool      `yaml:"skip_unchanged" default:"true"`
}

// Document is the top-level shape of a batch config file: either a
// {jobs: [...]} map or a bare job list, mirroring the teacher's
// project-list parsing.
type Document struct {
	Jobs []Job `yaml:"jobs"`
}

// ParseJobs parses a batch config file's contents into a list of jobs
// with defaults applied.
func ParseJobs(data []byte) ([]Job, error) {
	// A bare list does not unmarshal into Document, so a failed or empty
	// document parse falls back to parsing the data as a list of jobs.
	var doc Document
	docErr := yaml.Unmarshal(data, &doc)

	jobs := doc.Jobs
	if docErr != nil || len(jobs) == 0 {
		if err := yaml.Unmarshal(data, &jobs); err != nil {
			if docErr != nil {
				return nil, docErr
			}
			return nil, err
		}
	}

	for i := range jobs {
		if err := defaults.Set(&jobs[i]); err != nil {
			return nil, fmt.Errorf("apply defaults to job %d: %w", i, err)
		}
	}

	return jobs, nil
}

// ParseFormat parses a job's Format string into a bcn.Format.
func ParseFormat(s string) (bcn.Format, error) {
	switch strings.ToLower(s) {
	case "bc1", "dxt1":
		return bcn.FormatBC1, nil
	case "bc2", "dxt3":
		return bcn.FormatBC2, nil
	case "bc3", "dxt5":
		return bcn.FormatBC3, nil
	case "bc4":
		return bcn.FormatBC4, nil
	case "bc5":
		return bcn.FormatBC5, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

// RunJob executes a single job, reading its raw input image, compressing
// it, and writing the compressed block stream. If job.SkipUnchanged is
// set and the input and params hash match a cache file sitting next to
// the output, the job is skipped entirely.
func RunJob(baseDir string, job Job) (skipped bool, err error) {
	format, err := ParseFormat(job.Format)
	if err != nil {
		return false, err
	}
	params, err := job.Params.ToParams()
	if err != nil {
		return false, err
	}

	inputPath := resolvePath(baseDir, job.Input)
	outputPath := resolvePath(baseDir, job.Output)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return false, fmt.Errorf("read input %q: %w", inputPath, err)
	}

	hash := computeJobHash(data, job.Format, params)
	cachePath := outputPath + ".hash"

	if job.SkipUnchanged && shouldSkip(cachePath, outputPath, hash) {
		return true, nil
	}

	img, err := rawimage.Decode(data)
	if err != nil {
		return false, fmt.Errorf("decode input %q: %w", inputPath, err)
	}

	compressed := bcn.CompressParallel(format, img.Width, img.Height, img.Pix, params)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return false, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, compressed, 0o644); err != nil {
		return false, fmt.Errorf("write output %q: %w", outputPath, err)
	}
	if err := writeCacheHash(cachePath, hash); err != nil {
		return false, err
	}

	return false, nil
}

// RunAll runs every job in jobs, returning the number skipped via cache
// and the first error encountered (subsequent jobs do not run).
func RunAll(baseDir string, jobs []Job) (skippedCount int, err error) {
	for i, job := range jobs {
		skipped, err := RunJob(baseDir, job)
		if err != nil {
			return skippedCount, fmt.Errorf("job %d (%s): %w", i, job.Name, err)
		}
		if skipped {
			skippedCount++
		}
	}
	return skippedCount, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
