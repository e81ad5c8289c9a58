// Package discovery expands command-line paths into the video files a batch
// will process.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/util"
)

// DiscoveryLogger defines the interface for discovery logging.
type DiscoveryLogger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// DiscoveryResult contains the results of file discovery with metadata.
type DiscoveryResult struct {
	Files        []string
	SkippedCount int
}

// FindVideoFiles finds video files in the given directory.
// Returns files sorted alphabetically by filename.
func FindVideoFiles(inputDir string) ([]string, error) {
	files, _, err := scanDir(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, rferrors.NewNoFilesFoundError(inputDir)
	}
	return files, nil
}

// Collect expands a mix of files and directories into an ordered, de-duplicated
// list of video files. Explicit files keep argument order; directory contents
// are sorted by name. Non-video files are counted as skipped.
func Collect(paths []string, logger DiscoveryLogger) (*DiscoveryResult, error) {
	result := &DiscoveryResult{}
	seen := make(map[string]bool)

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		result.Files = append(result.Files, abs)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, rferrors.NewInputError(p)
		}
		if info.IsDir() {
			files, skipped, err := scanDir(p)
			if err != nil {
				return nil, err
			}
			result.SkippedCount += skipped
			for _, f := range files {
				add(f)
			}
			continue
		}
		if util.IsVideoFile(p) {
			add(p)
		} else {
			result.SkippedCount++
		}
	}

	if len(result.Files) == 0 {
		return nil, rferrors.NewNoFilesFoundError(strings.Join(paths, ", "))
	}

	if logger != nil {
		logDiscoveredFiles(result, logger)
	}
	return result, nil
}

func scanDir(inputDir string) ([]string, int, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, 0, fmt.Errorf("directory does not exist: %s", inputDir)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%s is not a directory", inputDir)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read directory %s: %w", inputDir, err)
	}

	var files []string
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// Skip hidden files and our own temp outputs
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "reelfx_tmp_") {
			continue
		}

		fullPath := filepath.Join(inputDir, name)
		if util.IsVideoFile(fullPath) {
			files = append(files, fullPath)
		} else {
			skipped++
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, skipped, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(result *DiscoveryResult, logger DiscoveryLogger) {
	files := result.Files
	logger.Info("Found %d video file(s), skipped %d", len(files), result.SkippedCount)

	maxToLog := min(5, len(files))
	for i := 0; i < maxToLog; i++ {
		logger.Debug("  %s", filepath.Base(files[i]))
	}

	if len(files) > 5 {
		logger.Debug("  ... and %d more", len(files)-5)
	}
}
