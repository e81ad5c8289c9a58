package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/logging"
	"github.com/five82/reelfx/internal/util"
)

// DefaultBinary is the ffmpeg executable looked up on PATH.
const DefaultBinary = "ffmpeg"

// Progress represents processing progress information.
type Progress struct {
	CurrentFrame uint64
	Percent      float32
	Speed        float32
	FPS          float32
	ETA          time.Duration
	Bitrate      string
	ElapsedSecs  float64
}

// ProgressCallback is called with progress updates while ffmpeg runs.
type ProgressCallback func(Progress)

// RunOptions tunes a single invocation.
type RunOptions struct {
	// Duration is the media duration in seconds, used for percent and ETA.
	// Zero means unknown.
	Duration float64
	Progress ProgressCallback
}

// Result contains the result of an FFmpeg operation.
type Result struct {
	Success bool
	Error   error
	Stderr  string
}

// Runner executes ffmpeg with a prepared argument list.
type Runner interface {
	Run(ctx context.Context, args []string, opts RunOptions) Result
}

// ExecRunner runs the real ffmpeg binary.
type ExecRunner struct {
	Binary string
}

// NewExecRunner creates a runner for binary, defaulting to "ffmpeg".
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{Binary: binary}
}

var timeRegex = regexp.MustCompile(`time=(\d{2}:\d{2}:\d{2}\.?\d*)`)

// Run executes ffmpeg and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, args []string, opts RunOptions) Result {
	logging.Debug("running ffmpeg", "binary", r.Binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.Binary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{
			Success: false,
			Error:   fmt.Errorf("failed to get stderr pipe: %w", err),
		}
	}

	if err := cmd.Start(); err != nil {
		return Result{
			Success: false,
			Error:   rferrors.NewCommandStartError(r.Binary, err),
		}
	}

	var stderrBuilder strings.Builder
	parseProgress(stderr, &stderrBuilder, opts.Duration, opts.Progress)

	err = cmd.Wait()
	stderrStr := stderrBuilder.String()

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{
				Success: false,
				Error:   rferrors.NewTimeoutError("ffmpeg timed out", ctx.Err()),
				Stderr:  stderrStr,
			}
		}
		if ctx.Err() != nil {
			return Result{
				Success: false,
				Error:   fmt.Errorf("ffmpeg cancelled: %w", ctx.Err()),
				Stderr:  stderrStr,
			}
		}
		return Result{
			Success: false,
			Error:   rferrors.WrapExecError(r.Binary, err, stderrStr),
			Stderr:  stderrStr,
		}
	}

	return Result{
		Success: true,
		Stderr:  stderrStr,
	}
}

// Version runs "ffmpeg -version" and returns its first line.
func Version(ctx context.Context, binary string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, binary, "-version").Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", rferrors.NewTimeoutError(binary+" -version", ctx.Err())
		}
		return "", rferrors.WrapExecError(binary, err, "")
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// parseProgress reads FFmpeg stderr and parses progress updates.
func parseProgress(stderr io.Reader, stderrBuilder *strings.Builder, duration float64, callback ProgressCallback) {
	reader := bufio.NewReader(stderr)
	var lineBuf strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			if err != io.EOF {
				logging.Debug("error reading ffmpeg stderr", "error", err)
			}
			break
		}

		stderrBuilder.WriteByte(b)

		// Progress lines end with \r or \n
		if b == '\r' || b == '\n' {
			line := lineBuf.String()
			lineBuf.Reset()

			if callback != nil && strings.Contains(line, "time=") {
				if progress := parseProgressLine(line, duration); progress != nil {
					callback(*progress)
				}
			}
		} else {
			lineBuf.WriteByte(b)
		}
	}
}

// parseProgressLine extracts progress information from an FFmpeg progress line.
func parseProgressLine(line string, duration float64) *Progress {
	var elapsedSecs float64
	if matches := timeRegex.FindStringSubmatch(line); len(matches) >= 2 {
		if secs, ok := util.ParseFFmpegTime(matches[1]); ok {
			elapsedSecs = secs
		}
	}

	var frame uint64
	if v := fieldValue(line, "frame="); v != "" {
		if f, err := strconv.ParseUint(v, 10, 64); err == nil {
			frame = f
		}
	}

	var fps float32
	if v := fieldValue(line, "fps="); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			fps = float32(f)
		}
	}

	bitrate := fieldValue(line, "bitrate=")

	var speed float32
	if v := strings.TrimSuffix(fieldValue(line, "speed="), "x"); v != "" {
		if s, err := strconv.ParseFloat(v, 32); err == nil {
			speed = float32(s)
		}
	}

	var percent float32
	if duration > 0 {
		percent = float32((elapsedSecs / duration) * 100)
		if percent > 100 {
			percent = 100
		}
	}

	var eta time.Duration
	if speed > 0 && duration > 0 {
		remaining := duration - elapsedSecs
		if remaining < 0 {
			remaining = 0
		}
		eta = time.Duration(remaining/float64(speed)) * time.Second
	}

	return &Progress{
		CurrentFrame: frame,
		Percent:      percent,
		Speed:        speed,
		FPS:          fps,
		ETA:          eta,
		Bitrate:      bitrate,
		ElapsedSecs:  elapsedSecs,
	}
}

// fieldValue returns the whitespace-delimited value after key, tolerating
// ffmpeg's padding ("frame=  120").
func fieldValue(line, key string) string {
	idx := strings.Index(line, key)
	if idx < 0 {
		return ""
	}
	remaining := strings.TrimLeft(line[idx+len(key):], " ")
	if end := strings.IndexAny(remaining, " \t\r\n"); end >= 0 {
		remaining = remaining[:end]
	}
	return remaining
}
