package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/texelfit/bcn/internal/bcn"
	"github.com/texelfit/bcn/internal/rawimage"
)

func TestParseJobsBareList(t *testing.T) {
	t.Parallel()

	data := []byte(`
- name: icon
  format: bc1
  input: in.raw
  output: out.bc1
- name: mask
  format: bc4
  input: mask.raw
  output: mask.bc4
`)
	jobs, err := ParseJobs(data)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[0].Params.Algorithm != "cluster_fit" {
		t.Fatalf("jobs[0].Params.Algorithm = %q, want default cluster_fit", jobs[0].Params.Algorithm)
	}
	if !jobs[0].SkipUnchanged {
		t.Fatal("jobs[0].SkipUnchanged default should be true")
	}
}

func TestParseJobsWrappedDocument(t *testing.T) {
	t.Parallel()

	data := []byte(`
jobs:
  - name: icon
    format: bc3
    input: in.raw
    output: out.bc3
`)
	jobs, err := ParseJobs(data)
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Name != "icon" {
		t.Fatalf("jobs = %+v, want one job named icon", jobs)
	}
}

func TestJobParamsToParamsRejectsUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	p := JobParams{Algorithm: "not_a_real_algorithm"}
	if _, err := p.ToParams(); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestParseFormatAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bcn.Format
	}{
		{"bc1", bcn.FormatBC1},
		{"DXT1", bcn.FormatBC1},
		{"bc3", bcn.FormatBC3},
		{"dxt5", bcn.FormatBC3},
		{"bc5", bcn.FormatBC5},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseFormat("bc99"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRunJobWritesOutputAndSkipsWhenUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	img := rawimage.New(8, 8)
	for i := range img.Pix {
		img.Pix[i] = bcn.ColorRGBA{R: uint8(i), G: uint8(i * 2), B: uint8(i * 3), A: 255}
	}
	inputPath := filepath.Join(dir, "in.raw")
	if err := os.WriteFile(inputPath, img.Encode(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	job := Job{
		Name:          "test",
		Format:        "bc1",
		Input:         "in.raw",
		Output:        "out.bc1",
		Params:        JobParams{Algorithm: "cluster_fit", Weights: [3]float32{1, 1, 1}},
		SkipUnchanged: true,
	}

	skipped, err := RunJob(dir, job)
	if err != nil {
		t.Fatalf("RunJob: %v", err)
	}
	if skipped {
		t.Fatal("first run should not be skipped")
	}

	outputPath := filepath.Join(dir, "out.bc1")
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	wantSize := bcn.CompressedSize(bcn.FormatBC1, 8, 8)
	if len(data) != wantSize {
		t.Fatalf("output size = %d, want %d", len(data), wantSize)
	}

	skipped2, err := RunJob(dir, job)
	if err != nil {
		t.Fatalf("RunJob (second run): %v", err)
	}
	if !skipped2 {
		t.Fatal("second run with unchanged input should be skipped")
	}
}

func TestRunJobReencodesWhenInputChanges(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	img := rawimage.New(4, 4)
	inputPath := filepath.Join(dir, "in.raw")
	if err := os.WriteFile(inputPath, img.Encode(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	job := Job{
		Format: "bc1", Input: "in.raw", Output: "out.bc1",
		Params: JobParams{Algorithm: "range_fit", Weights: [3]float32{1, 1, 1}}, SkipUnchanged: true,
	}
	if _, err := RunJob(dir, job); err != nil {
		t.Fatalf("RunJob: %v", err)
	}

	for i := range img.Pix {
		img.Pix[i] = bcn.ColorRGBA{R: 255, G: 0, B: 0, A: 255}
	}
	if err := os.WriteFile(inputPath, img.Encode(), 0o644); err != nil {
		t.Fatalf("rewrite input: %v", err)
	}

	skipped, err := RunJob(dir, job)
	if err != nil {
		t.Fatalf("RunJob after change: %v", err)
	}
	if skipped {
		t.Fatal("job should re-run when its input changes")
	}
}
