// Package processing runs ffmpeg jobs and orchestrates batches of them.
package processing

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/five82/reelfx/internal/config"
	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/ffmpeg"
	"github.com/five82/reelfx/internal/ffprobe"
	"github.com/five82/reelfx/internal/filter"
	"github.com/five82/reelfx/internal/logging"
	"github.com/five82/reelfx/internal/util"
)

const (
	// TempPrefix names in-flight video outputs.
	TempPrefix = "reelfx_tmp"

	// MaxReasonRunes bounds failure diagnostics taken from ffmpeg stderr.
	MaxReasonRunes = 200

	DefaultPreviewTimeout = 10 * time.Second
	DefaultFrameTimeout   = 15 * time.Second
)

// BatchConfig holds the settings shared by every file in one batch run. It
// is captured once when the batch starts.
type BatchConfig struct {
	Speed        float64
	Zoom         float64
	Selection    filter.Selection
	OutputSubdir string
}

// Validate checks speed and zoom bounds.
func (c BatchConfig) Validate() error {
	if err := config.ValidateSpeed(c.Speed); err != nil {
		return err
	}
	return config.ValidateZoom(c.Zoom)
}

// FilterExpression returns the color filter expression for the selection.
func (c BatchConfig) FilterExpression() string {
	return filter.Build(c.Selection)
}

// JobFor derives the per-file job description.
func (c BatchConfig) JobFor(inputPath string) JobSpec {
	return JobSpec{
		InputPath:        inputPath,
		Speed:            c.Speed,
		Zoom:             c.Zoom,
		FilterExpression: c.FilterExpression(),
	}
}

// JobSpec describes one video transform.
type JobSpec struct {
	InputPath        string
	Speed            float64
	Zoom             float64
	FilterExpression string
}

// VideoFilter returns the combined -vf chain: speed, then zoom, then color.
func (s JobSpec) VideoFilter() string {
	return ffmpeg.NewVideoFilterChain().
		AddSpeed(s.Speed).
		AddZoom(s.Zoom).
		AddFilter(s.FilterExpression).
		Build()
}

// AudioFilter returns the -af tempo chain, or "" at normal speed.
func (s JobSpec) AudioFilter() string {
	return ffmpeg.AtempoChain(s.Speed)
}

// JobResult is the outcome of one job. On success the caller owns the file at
// OutputPath.
type JobResult struct {
	Success    bool
	OutputPath string
	Reason     string
	Err        error
	Elapsed    time.Duration
}

func failed(err error, reason string) JobResult {
	return JobResult{Err: err, Reason: reason}
}

// ProbeFunc returns media information used for progress percentages.
type ProbeFunc func(path string) (*ffprobe.MediaInfo, error)

// JobRunner executes single jobs through an ffmpeg.Runner.
type JobRunner struct {
	Runner         ffmpeg.Runner
	Encode         ffmpeg.EncodeSettings
	TempDir        string
	PreviewTimeout time.Duration
	FrameTimeout   time.Duration
	// Probe is optional. Without it progress carries no percentage.
	Probe ProbeFunc
}

// NewJobRunner creates a job runner with the default timeouts.
func NewJobRunner(runner ffmpeg.Runner, encode ffmpeg.EncodeSettings, tempDir string) *JobRunner {
	return &JobRunner{
		Runner:         runner,
		Encode:         encode,
		TempDir:        tempDir,
		PreviewTimeout: DefaultPreviewTimeout,
		FrameTimeout:   DefaultFrameTimeout,
	}
}

// RunVideoJob renders spec into a fresh temp file. The job always runs to
// completion: cancellation of ctx is not propagated to ffmpeg.
func (r *JobRunner) RunVideoJob(ctx context.Context, spec JobSpec, progress ffmpeg.ProgressCallback) JobResult {
	start := time.Now()

	if !util.FileExists(spec.InputPath) {
		err := rferrors.NewInputError(spec.InputPath)
		return failed(err, err.Message)
	}

	tmp := util.TempFilePath(r.TempDir, TempPrefix, filepath.Ext(spec.InputPath))
	args := ffmpeg.VideoArgs(ffmpeg.VideoJob{
		InputPath:   spec.InputPath,
		OutputPath:  tmp,
		VideoFilter: spec.VideoFilter(),
		AudioFilter: spec.AudioFilter(),
		Encode:      r.Encode,
	})

	opts := ffmpeg.RunOptions{Progress: progress}
	if r.Probe != nil {
		if info, err := r.Probe(spec.InputPath); err == nil && info != nil {
			// Output duration shrinks with speed; progress time= is output time.
			opts.Duration = info.Duration / spec.Speed
		} else if err != nil {
			logging.Debug("probe failed, progress without percent", "input", spec.InputPath, "error", err)
		}
	}

	logging.Debug("video job", "input", spec.InputPath, "temp", tmp)
	res := r.Runner.Run(context.WithoutCancel(ctx), args, opts)
	if !res.Success {
		if err := util.RemoveIfExists(tmp); err != nil {
			logging.Warn("failed to remove partial output", "path", tmp, "error", err)
		}
		err := res.Error
		if err == nil {
			err = rferrors.NewToolError("ffmpeg failed", nil)
		}
		out := failed(err, failureReason(res))
		out.Elapsed = time.Since(start)
		logging.Warn("video job failed", "input", spec.InputPath, "reason", out.Reason)
		return out
	}

	logging.Debug("video job complete", "input", spec.InputPath, "elapsed", time.Since(start))
	return JobResult{Success: true, OutputPath: tmp, Elapsed: time.Since(start)}
}

// RunImagePreviewJob applies expr to a still image. An empty expression
// copies the image without invoking ffmpeg.
func (r *JobRunner) RunImagePreviewJob(ctx context.Context, imagePath, expr, outputPath string) JobResult {
	start := time.Now()
	if !util.FileExists(imagePath) {
		err := rferrors.NewInputError(imagePath)
		return failed(err, err.Message)
	}

	if expr == "" {
		if err := util.CopyFile(imagePath, outputPath); err != nil {
			ioErr := rferrors.NewIOError("failed to copy preview image", err)
			return failed(ioErr, ioErr.Error())
		}
		return JobResult{Success: true, OutputPath: outputPath, Elapsed: time.Since(start)}
	}

	args := ffmpeg.ImageFilterArgs(imagePath, outputPath, expr)
	return r.runBounded(ctx, args, outputPath, r.PreviewTimeout, "image preview", start)
}

// ExtractFrame writes the first frame of a video as a JPEG.
func (r *JobRunner) ExtractFrame(ctx context.Context, videoPath, outputPath string) JobResult {
	start := time.Now()
	if !util.FileExists(videoPath) {
		err := rferrors.NewInputError(videoPath)
		return failed(err, err.Message)
	}
	args := ffmpeg.FrameArgs(videoPath, outputPath)
	return r.runBounded(ctx, args, outputPath, r.FrameTimeout, "frame extraction", start)
}

func (r *JobRunner) runBounded(ctx context.Context, args []string, outputPath string, timeout time.Duration, op string, start time.Time) JobResult {
	if timeout <= 0 {
		timeout = DefaultPreviewTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := r.Runner.Run(runCtx, args, ffmpeg.RunOptions{})
	if res.Success {
		return JobResult{Success: true, OutputPath: outputPath, Elapsed: time.Since(start)}
	}

	_ = util.RemoveIfExists(outputPath)
	err := res.Error
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && !rferrors.IsKind(err, rferrors.KindTimeout):
		err = rferrors.NewTimeoutError(op+" timed out", runCtx.Err())
	case err == nil:
		err = rferrors.NewToolError(op+" failed", nil)
	}

	reason := failureReason(res)
	if rferrors.IsTimeout(err) {
		reason = fmt.Sprintf("%s timed out after %s", op, timeout)
	}
	out := failed(err, reason)
	out.Elapsed = time.Since(start)
	return out
}

// failureReason condenses stderr to MaxReasonRunes without the version
// banner, falling back to the error text.
func failureReason(res ffmpeg.Result) string {
	if reason := ffmpeg.Diagnostic(res.Stderr, MaxReasonRunes); reason != "" {
		return reason
	}
	if res.Error != nil {
		return util.TruncateRunes(res.Error.Error(), MaxReasonRunes)
	}
	return "ffmpeg failed"
}
