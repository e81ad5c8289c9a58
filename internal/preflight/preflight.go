// Package preflight checks that ffmpeg and the working directories are usable
// before a batch starts.
package preflight

import (
	"context"
	"fmt"
	"os"

	"github.com/five82/reelfx/internal/config"
	"github.com/five82/reelfx/internal/ffmpeg"
)

// Result is the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckFFmpeg(ctx, cfg.Processing.FFmpegBinary)}
	results = append(results, CheckDirectoryAccess("Temp directory", cfg.Processing.TempDir))
	results = append(results, CheckDirectoryAccess("Preview directory", cfg.Paths.PreviewDir))
	if cfg.Download.VideoDir != "" {
		results = append(results, CheckDirectoryAccess("Download directory", cfg.Download.VideoDir))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// CheckFFmpeg verifies the ffmpeg binary runs and reports its version line.
func CheckFFmpeg(ctx context.Context, binary string) Result {
	const name = "FFmpeg"
	version, err := ffmpeg.Version(ctx, binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not usable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: version}
}

// CheckDirectoryAccess verifies path is a directory the process can read,
// write and enter.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
