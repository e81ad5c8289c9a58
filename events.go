package reelfx

import (
	"time"

	"github.com/five82/reelfx/internal/reporter"
)

// EventType identifies an event.
type EventType string

const (
	EventTypeBatchStarted         EventType = "batch_started"
	EventTypeFileStarted          EventType = "file_started"
	EventTypeJobProgress          EventType = "job_progress"
	EventTypeFileFailed           EventType = "file_failed"
	EventTypeFileSaved            EventType = "file_saved"
	EventTypeDestinationRequested EventType = "destination_requested"
	EventTypeWarning              EventType = "warning"
	EventTypeError                EventType = "error"
	EventTypeBatchComplete        EventType = "batch_complete"
)

// Event is implemented by every event type.
type Event interface {
	Type() EventType
}

// EventHandler receives events. Returned errors are ignored.
type EventHandler func(Event) error

// NewTimestamp returns the current Unix time in seconds.
func NewTimestamp() int64 {
	return time.Now().Unix()
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      int64     `json:"timestamp"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType { return e.EventType }

type BatchStartedEvent struct {
	BaseEvent
	TotalFiles  int      `json:"total_files"`
	Files       []string `json:"files"`
	Filter      string   `json:"filter"`
	VideoFilter string   `json:"video_filter"`
	AudioFilter string   `json:"audio_filter"`
}

type FileStartedEvent struct {
	BaseEvent
	CurrentFile int    `json:"current_file"`
	TotalFiles  int    `json:"total_files"`
	InputFile   string `json:"input_file"`
}

type JobProgressEvent struct {
	BaseEvent
	Percent    float32 `json:"percent"`
	Speed      float32 `json:"speed"`
	FPS        float32 `json:"fps"`
	ETASeconds int64   `json:"eta_seconds"`
}

type FileFailedEvent struct {
	BaseEvent
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type FileSavedEvent struct {
	BaseEvent
	InputFile  string `json:"input_file"`
	OutputPath string `json:"output_path"`
}

type DestinationRequestedEvent struct {
	BaseEvent
	Filename      string `json:"filename"`
	SuggestedPath string `json:"suggested_path"`
}

type WarningEvent struct {
	BaseEvent
	Message string `json:"message"`
}

type ErrorEvent struct {
	BaseEvent
	Title      string `json:"title"`
	Message    string `json:"message"`
	Context    string `json:"context,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type BatchCompleteEvent struct {
	BaseEvent
	TotalFiles     int    `json:"total_files"`
	Succeeded      int    `json:"succeeded"`
	Failed         int    `json:"failed"`
	Skipped        int    `json:"skipped"`
	Cancelled      bool   `json:"cancelled"`
	Message        string `json:"message,omitempty"`
	DestinationDir string `json:"destination_dir,omitempty"`
}

func base(t EventType) BaseEvent {
	return BaseEvent{EventType: t, Time: NewTimestamp()}
}

// eventReporter adapts EventHandler to the Reporter interface.
type eventReporter struct {
	handler EventHandler
}

func newEventReporter(handler EventHandler) *eventReporter {
	return &eventReporter{handler: handler}
}

func (r *eventReporter) Hardware(reporter.HardwareSummary)         {}
func (r *eventReporter) FileProgress(reporter.FileProgressContext) {}
func (r *eventReporter) OperationComplete(string)                  {}
func (r *eventReporter) Verbose(string)                            {}

func (r *eventReporter) BatchStarted(info reporter.BatchStartInfo) {
	_ = r.handler(BatchStartedEvent{
		BaseEvent:   base(EventTypeBatchStarted),
		TotalFiles:  info.TotalFiles,
		Files:       info.FileList,
		Filter:      info.Filter,
		VideoFilter: info.VideoFilter,
		AudioFilter: info.AudioFilter,
	})
}

func (r *eventReporter) FileStarted(info reporter.FileStartInfo) {
	_ = r.handler(FileStartedEvent{
		BaseEvent:   base(EventTypeFileStarted),
		CurrentFile: info.CurrentFile,
		TotalFiles:  info.TotalFiles,
		InputFile:   info.InputFile,
	})
}

func (r *eventReporter) JobProgress(p reporter.ProgressSnapshot) {
	_ = r.handler(JobProgressEvent{
		BaseEvent:  base(EventTypeJobProgress),
		Percent:    p.Percent,
		Speed:      p.Speed,
		FPS:        p.FPS,
		ETASeconds: int64(p.ETA.Seconds()),
	})
}

func (r *eventReporter) FileFailed(f reporter.FileFailure) {
	_ = r.handler(FileFailedEvent{
		BaseEvent: base(EventTypeFileFailed),
		Filename:  f.Filename,
		Reason:    f.Reason,
	})
}

func (r *eventReporter) FileSaved(s reporter.SavedFile) {
	_ = r.handler(FileSavedEvent{
		BaseEvent:  base(EventTypeFileSaved),
		InputFile:  s.InputFile,
		OutputPath: s.OutputPath,
	})
}

func (r *eventReporter) DestinationRequested(p reporter.DestinationPrompt) {
	_ = r.handler(DestinationRequestedEvent{
		BaseEvent:     base(EventTypeDestinationRequested),
		Filename:      p.Filename,
		SuggestedPath: p.SuggestedPath,
	})
}

func (r *eventReporter) Warning(message string) {
	_ = r.handler(WarningEvent{
		BaseEvent: base(EventTypeWarning),
		Message:   message,
	})
}

func (r *eventReporter) Error(e reporter.ReporterError) {
	_ = r.handler(ErrorEvent{
		BaseEvent:  base(EventTypeError),
		Title:      e.Title,
		Message:    e.Message,
		Context:    e.Context,
		Suggestion: e.Suggestion,
	})
}

func (r *eventReporter) BatchComplete(s reporter.BatchSummary) {
	_ = r.handler(BatchCompleteEvent{
		BaseEvent:      base(EventTypeBatchComplete),
		TotalFiles:     s.TotalFiles,
		Succeeded:      s.Succeeded,
		Failed:         s.Failed,
		Skipped:        s.Skipped,
		Cancelled:      s.Cancelled,
		Message:        s.Message,
		DestinationDir: s.DestinationDir,
	})
}
