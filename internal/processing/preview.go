package processing

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/filter"
	"github.com/five82/reelfx/internal/logging"
	"github.com/five82/reelfx/internal/util"
)

const (
	// PreviewPrefix names every file written into the preview directory.
	PreviewPrefix   = "reelfx_preview"
	thumbnailPrefix = PreviewPrefix + "_thumb"

	// StaleAge is how old a leftover preview or temp render must be before
	// it is removed on startup.
	StaleAge = 24 * time.Hour
)

// PreviewResult is the outcome of one preview render. Seq increases with
// every call so callers can discard results that arrive late.
type PreviewResult struct {
	JobResult
	Seq        uint64
	Expression string
}

// PreviewRunner renders filter previews of still images. Calls are
// independent and may run concurrently.
type PreviewRunner struct {
	jobs *JobRunner
	dir  string
	seq  atomic.Uint64
}

// NewPreviewRunner creates a runner writing outputs into dir. Previews left
// behind by earlier runs and older than StaleAge are removed.
func NewPreviewRunner(jobs *JobRunner, dir string) *PreviewRunner {
	if n, err := util.CleanupStaleTempFiles(dir, PreviewPrefix, StaleAge); err != nil {
		logging.Warn("failed to clean preview directory", "dir", dir, "error", err)
	} else if n > 0 {
		logging.Debug("removed stale previews", "dir", dir, "count", n)
	}
	return &PreviewRunner{jobs: jobs, dir: dir}
}

// Preview applies sel to imagePath and writes a fresh output file.
func (p *PreviewRunner) Preview(ctx context.Context, imagePath string, sel filter.Selection) PreviewResult {
	seq := p.seq.Add(1)
	expr := filter.Build(sel)

	if err := util.EnsureDirectory(p.dir); err != nil {
		ioErr := rferrors.NewIOError("cannot create preview directory", err)
		return PreviewResult{JobResult: failed(ioErr, ioErr.Error()), Seq: seq, Expression: expr}
	}

	ext := strings.ToLower(filepath.Ext(imagePath))
	if ext == "" {
		ext = ".jpg"
	}
	out := util.TempFilePath(p.dir, PreviewPrefix, ext)
	res := p.jobs.RunImagePreviewJob(ctx, imagePath, expr, out)
	return PreviewResult{JobResult: res, Seq: seq, Expression: expr}
}

// Thumbnail extracts the first frame of a video into the preview directory.
func (p *PreviewRunner) Thumbnail(ctx context.Context, videoPath string) JobResult {
	if err := util.EnsureDirectory(p.dir); err != nil {
		ioErr := rferrors.NewIOError("cannot create preview directory", err)
		return failed(ioErr, ioErr.Error())
	}
	return p.jobs.ExtractFrame(ctx, videoPath, util.TempFilePath(p.dir, thumbnailPrefix, ".jpg"))
}

// Latest keeps the preview with the highest sequence number. It owns the
// files of the results offered to it: a replaced or late result has its
// output removed.
type Latest struct {
	mu     sync.Mutex
	result PreviewResult
	set    bool
}

// Offer records res if it is newer than the current one and reports whether
// it was kept.
func (l *Latest) Offer(res PreviewResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.set && res.Seq <= l.result.Seq {
		discardPreview(res)
		return false
	}
	if l.set {
		discardPreview(l.result)
	}
	l.result = res
	l.set = true
	return true
}

func discardPreview(res PreviewResult) {
	if !res.Success || res.OutputPath == "" {
		return
	}
	if err := util.RemoveIfExists(res.OutputPath); err != nil {
		logging.Warn("failed to remove superseded preview", "path", res.OutputPath, "error", err)
	}
}

// Get returns the newest result and whether one exists.
func (l *Latest) Get() (PreviewResult, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result, l.set
}
