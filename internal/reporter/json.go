package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events, one object per line.
type JSONReporter struct {
	writer             io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer:             w,
		lastProgressBucket: -1,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) Hardware(summary HardwareSummary) {
	r.write(map[string]any{
		"type":           "hardware",
		"hostname":       summary.Hostname,
		"os":             summary.OS,
		"arch":           summary.Arch,
		"num_cpu":        summary.NumCPU,
		"ffmpeg_version": summary.FFmpegVersion,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]any{
		"type":         "batch_started",
		"total_files":  info.TotalFiles,
		"file_list":    info.FileList,
		"speed":        info.Speed,
		"zoom":         info.Zoom,
		"filter":       info.Filter,
		"video_filter": info.VideoFilter,
		"audio_filter": info.AudioFilter,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) FileStarted(info FileStartInfo) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.lastProgressTime = time.Time{}
	r.mu.Unlock()

	r.write(map[string]any{
		"type":         "file_started",
		"current_file": info.CurrentFile,
		"total_files":  info.TotalFiles,
		"input_file":   info.InputFile,
		"duration":     info.Duration,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) JobProgress(progress ProgressSnapshot) {
	const progressBucketSize = 1
	const minInterval = 5 * time.Second

	bucket := int(progress.Percent) / progressBucketSize
	now := time.Now()

	r.mu.Lock()
	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	shouldEmit := bucket > r.lastProgressBucket || intervalElapsed || progress.Percent >= 99.0

	if !shouldEmit {
		r.mu.Unlock()
		return
	}

	if bucket > r.lastProgressBucket {
		r.lastProgressBucket = bucket
	}
	r.lastProgressTime = now
	r.mu.Unlock()

	r.write(map[string]any{
		"type":          "job_progress",
		"current_frame": progress.CurrentFrame,
		"percent":       progress.Percent,
		"speed":         progress.Speed,
		"fps":           progress.FPS,
		"eta_seconds":   int64(progress.ETA.Seconds()),
		"elapsed":       progress.ElapsedSecs,
		"bitrate":       progress.Bitrate,
		"timestamp":     r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]any{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"succeeded":    context.Succeeded,
		"failed":       context.Failed,
		"skipped":      context.Skipped,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) FileFailed(failure FileFailure) {
	r.write(map[string]any{
		"type":      "file_failed",
		"filename":  failure.Filename,
		"reason":    failure.Reason,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) FileSaved(saved SavedFile) {
	r.write(map[string]any{
		"type":            "file_saved",
		"input_file":      saved.InputFile,
		"output_path":     saved.OutputPath,
		"elapsed_seconds": saved.Elapsed.Seconds(),
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) DestinationRequested(prompt DestinationPrompt) {
	r.write(map[string]any{
		"type":           "destination_requested",
		"filename":       prompt.Filename,
		"suggested_path": prompt.SuggestedPath,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]any{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]any{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]any{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]any{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	shown, hidden := ListedFailures(summary.Failures)
	failures := make([]map[string]string, len(shown))
	for i, f := range shown {
		failures[i] = map[string]string{"filename": f.Filename, "reason": f.Reason}
	}

	r.write(map[string]any{
		"type":                   "batch_complete",
		"total_files":            summary.TotalFiles,
		"succeeded":              summary.Succeeded,
		"failed":                 summary.Failed,
		"skipped":                summary.Skipped,
		"cancelled":              summary.Cancelled,
		"message":                summary.Message,
		"destination_dir":        summary.DestinationDir,
		"saved":                  summary.Saved,
		"failures":               failures,
		"failures_hidden":        hidden,
		"total_duration_seconds": int64(summary.TotalDuration.Seconds()),
		"timestamp":              r.timestamp(),
	})
}
