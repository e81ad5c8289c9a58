// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// HardwareSummary contains host and tool information.
type HardwareSummary struct {
	Hostname      string
	OS            string
	Arch          string
	NumCPU        int
	FFmpegVersion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles  int
	FileList    []string
	Speed       float64
	Zoom        float64
	Filter      string
	VideoFilter string
	AudioFilter string
}

// FileStartInfo describes the file about to be rendered.
type FileStartInfo struct {
	CurrentFile int
	TotalFiles  int
	InputFile   string
	Duration    string
}

// ProgressSnapshot contains job progress information.
type ProgressSnapshot struct {
	CurrentFrame uint64
	Percent      float32
	Speed        float32
	FPS          float32
	ETA          time.Duration
	Bitrate      string
	ElapsedSecs  float64
}

// FileProgressContext is emitted after each file regardless of outcome.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	Succeeded   int
	Failed      int
	Skipped     int
}

// FileFailure records one failed file.
type FileFailure struct {
	Filename string
	Reason   string
}

// SavedFile records one relocated output.
type SavedFile struct {
	InputFile  string
	OutputPath string
	Elapsed    time.Duration
}

// DestinationPrompt announces that the batch is waiting for a destination.
type DestinationPrompt struct {
	Filename      string
	SuggestedPath string
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	TotalFiles     int
	Succeeded      int
	Failed         int
	Skipped        int
	Cancelled      bool
	Message        string
	DestinationDir string
	TotalDuration  time.Duration
	Failures       []FileFailure
	Saved          []string
}

// MaxListedFailures is how many failures a summary lists before collapsing
// the rest into a count.
const MaxListedFailures = 5

// ListedFailures splits failures into those shown and the hidden remainder.
func ListedFailures(failures []FileFailure) ([]FileFailure, int) {
	if len(failures) <= MaxListedFailures {
		return failures, 0
	}
	return failures[:MaxListedFailures], len(failures) - MaxListedFailures
}
