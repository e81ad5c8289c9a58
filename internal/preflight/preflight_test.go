package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/reelfx/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		want     bool
		contains string
	}{
		{"writable dir", dir, true, "read/write ok"},
		{"missing", filepath.Join(dir, "nope"), false, "does not exist"},
		{"file", file, false, "is not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckDirectoryAccess("test", tt.path)
			if r.Passed != tt.want {
				t.Errorf("Passed = %v, want %v (%s)", r.Passed, tt.want, r.Detail)
			}
			if !strings.Contains(r.Detail, tt.contains) {
				t.Errorf("Detail = %q, want it to contain %q", r.Detail, tt.contains)
			}
		})
	}
}

func TestCheckFFmpegMissingBinary(t *testing.T) {
	r := CheckFFmpeg(context.Background(), filepath.Join(t.TempDir(), "no-ffmpeg"))
	if r.Passed {
		t.Errorf("CheckFFmpeg() passed for a missing binary: %s", r.Detail)
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Processing.FFmpegBinary = filepath.Join(t.TempDir(), "no-ffmpeg")
	cfg.Processing.TempDir = t.TempDir()
	cfg.Paths.PreviewDir = filepath.Join(t.TempDir(), "missing")
	cfg.Download.VideoDir = ""

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("RunAll() returned %d results, want 3", len(results))
	}
	if !results[1].Passed || results[2].Passed {
		t.Errorf("results = %+v", results)
	}
	if !Failed(results) {
		t.Error("Failed() = false")
	}
	if RunAll(context.Background(), nil) != nil {
		t.Error("RunAll(nil) should be nil")
	}
}
