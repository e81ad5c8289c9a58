package processing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/ffmpeg"
	"github.com/five82/reelfx/internal/logging"
	"github.com/five82/reelfx/internal/reporter"
	"github.com/five82/reelfx/internal/util"
)

// ErrBatchRunning is returned when a batch is started, or the file list is
// changed, while another batch is in progress.
var ErrBatchRunning = errors.New("a batch is already running")

// ErrDestinationExists is returned when a finished file would replace an
// existing one.
var ErrDestinationExists = errors.New("destination already exists")

// StoppedByUser is the outcome message for a declined or interrupted batch.
const StoppedByUser = "processing stopped by user"

// State is the orchestrator lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateAwaitingDestination
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateAwaitingDestination:
		return "awaiting-destination"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// FileFailure records why one file failed.
type FileFailure struct {
	Filename string
	Reason   string
}

// BatchOutcome is the end-of-run report. Every input ends in exactly one of
// Success, Failure or Skipped.
type BatchOutcome struct {
	Total          int
	Success        int
	Failure        int
	Skipped        int
	Failures       []FileFailure
	Saved          []string
	Cancelled      bool
	Message        string
	DestinationDir string
	StartedAt      time.Time
	Duration       time.Duration
}

// Orchestrator runs batches sequentially over its FileList.
type Orchestrator struct {
	jobs     *JobRunner
	rep      reporter.Reporter
	files    *FileList
	requests chan *DestinationRequest

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates an idle orchestrator. A nil reporter discards events.
func NewOrchestrator(jobs *JobRunner, rep reporter.Reporter) *Orchestrator {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	o := &Orchestrator{
		jobs:     jobs,
		rep:      rep,
		requests: make(chan *DestinationRequest),
	}
	o.files = newFileList(o.requireIdle)
	return o
}

// Files returns the input list for the next batch.
func (o *Orchestrator) Files() *FileList { return o.files }

// Requests delivers destination requests. Somebody must answer them while a
// batch runs.
func (o *Orchestrator) Requests() <-chan *DestinationRequest { return o.requests }

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) requireIdle() error {
	if o.State() != StateIdle {
		return ErrBatchRunning
	}
	return nil
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return ErrBatchRunning
	}
	o.state = StateRunning
	return nil
}

// Run processes every file in order with cfg. It returns an error only when
// the batch cannot start; per-file problems are reported in the outcome.
//
// Cancelling ctx never interrupts a job already handed to ffmpeg. Remaining
// files are skipped once the current one finishes.
func (o *Orchestrator) Run(ctx context.Context, cfg BatchConfig) (*BatchOutcome, error) {
	return o.RunWith(ctx, cfg, nil)
}

// RunWith is Run with destination requests answered by choose. The chooser
// is only attached once this call owns the orchestrator, so a rejected call
// never sees another batch's requests. A nil choose leaves Requests() to the
// caller.
func (o *Orchestrator) RunWith(ctx context.Context, cfg BatchConfig, choose DestinationChooser) (*BatchOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer o.setState(StateIdle)

	if choose != nil {
		serveCtx, stopServing := context.WithCancel(ctx)
		defer stopServing()
		go ServeDestinations(serveCtx, o.requests, choose)
	}

	files := o.files.Files()
	if len(files) == 0 {
		return nil, rferrors.NewNoFilesFoundError("file list")
	}

	outcome := &BatchOutcome{Total: len(files), StartedAt: time.Now()}
	// destDir is fixed by the first reply and never asked for again, even
	// when that file then fails to move.
	var destDir string
	expr := cfg.FilterExpression()
	first := cfg.JobFor("")

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = util.GetFilename(f)
	}
	o.rep.BatchStarted(reporter.BatchStartInfo{
		TotalFiles:  len(files),
		FileList:    names,
		Speed:       cfg.Speed,
		Zoom:        cfg.Zoom,
		Filter:      cfg.Selection.Name(),
		VideoFilter: first.VideoFilter(),
		AudioFilter: first.AudioFilter(),
	})
	logging.Info("batch started", "files", len(files), "speed", cfg.Speed, "zoom", cfg.Zoom, "filter", expr)

	for i, input := range files {
		if ctx.Err() != nil {
			outcome.Skipped += len(files) - i
			outcome.Cancelled = true
			outcome.Message = StoppedByUser
			logging.Info("batch interrupted", "skipped", len(files)-i)
			break
		}

		filename := util.GetFilename(input)
		o.rep.FileStarted(reporter.FileStartInfo{CurrentFile: i + 1, TotalFiles: len(files), InputFile: filename})

		res := o.jobs.RunVideoJob(ctx, cfg.JobFor(input), o.forwardProgress)
		if !res.Success {
			o.recordFailure(outcome, filename, res.Reason)
			o.reportFileProgress(outcome, i+1)
			continue
		}

		dest, ok := o.destinationFor(ctx, destDir, cfg, input, filename)
		if !ok {
			if err := util.RemoveIfExists(res.OutputPath); err != nil {
				logging.Warn("failed to remove declined output", "path", res.OutputPath, "error", err)
			}
			outcome.Skipped += len(files) - i
			outcome.Cancelled = true
			outcome.Message = StoppedByUser
			o.reportFileProgress(outcome, i+1)
			logging.Info("destination declined, batch stopped", "skipped", len(files)-i)
			break
		}

		if destDir == "" {
			destDir = filepath.Dir(dest)
			outcome.DestinationDir = destDir
		}

		if err := relocate(res.OutputPath, dest); err != nil {
			_ = util.RemoveIfExists(res.OutputPath)
			logging.Debug("relocation failed", "error", rferrors.NewRelocationError(dest, err))
			o.recordFailure(outcome, filename, fmt.Sprintf("failed to save: %v", err))
			o.reportFileProgress(outcome, i+1)
			continue
		}

		outcome.Success++
		outcome.Saved = append(outcome.Saved, dest)
		o.rep.FileSaved(reporter.SavedFile{InputFile: filename, OutputPath: dest, Elapsed: res.Elapsed})
		logging.Info("file saved", "input", input, "output", dest)
		o.reportFileProgress(outcome, i+1)
	}

	outcome.Duration = time.Since(outcome.StartedAt)
	o.setState(StateCompleted)
	o.rep.BatchComplete(summaryOf(outcome))
	logging.Info("batch complete", "success", outcome.Success, "failure", outcome.Failure, "skipped", outcome.Skipped)
	return outcome, nil
}

// destinationFor returns where a successful render goes. Until destDir is
// known the caller is asked; afterwards files are auto-named inside it.
func (o *Orchestrator) destinationFor(ctx context.Context, destDir string, cfg BatchConfig, input, filename string) (string, bool) {
	if destDir != "" {
		return filepath.Join(destDir, util.ProcessedName(input, util.UniqueToken())), true
	}

	subdir := cfg.OutputSubdir
	if subdir == "" {
		subdir = "edited"
	}
	req := newDestinationRequest(input, filename, util.SuggestedOutputPath(input, subdir, util.UniqueToken()))

	o.setState(StateAwaitingDestination)
	defer o.setState(StateRunning)

	o.rep.DestinationRequested(reporter.DestinationPrompt{Filename: filename, SuggestedPath: req.SuggestedPath})

	select {
	case o.requests <- req:
	case <-ctx.Done():
		return "", false
	}

	path, ok := req.wait(ctx)
	if !ok {
		return "", false
	}
	return resolveDestination(path, input), true
}

// resolveDestination appends a generated file name when path names a
// directory.
func resolveDestination(path, input string) string {
	if strings.HasSuffix(path, string(os.PathSeparator)) || util.DirectoryExists(path) {
		return filepath.Join(path, util.ProcessedName(input, util.UniqueToken()))
	}
	return path
}

func relocate(tmp, dest string) error {
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dest)
	}
	if err := util.EnsureDirectory(filepath.Dir(dest)); err != nil {
		return err
	}
	return util.MoveFile(tmp, dest)
}

func (o *Orchestrator) recordFailure(outcome *BatchOutcome, filename, reason string) {
	outcome.Failure++
	outcome.Failures = append(outcome.Failures, FileFailure{Filename: filename, Reason: reason})
	o.rep.FileFailed(reporter.FileFailure{Filename: filename, Reason: reason})
	logging.Warn("file failed", "file", filename, "reason", reason)
}

func (o *Orchestrator) reportFileProgress(outcome *BatchOutcome, current int) {
	o.rep.FileProgress(reporter.FileProgressContext{
		CurrentFile: current,
		TotalFiles:  outcome.Total,
		Succeeded:   outcome.Success,
		Failed:      outcome.Failure,
		Skipped:     outcome.Skipped,
	})
}

func (o *Orchestrator) forwardProgress(p ffmpeg.Progress) {
	o.rep.JobProgress(reporter.ProgressSnapshot{
		CurrentFrame: p.CurrentFrame,
		Percent:      p.Percent,
		Speed:        p.Speed,
		FPS:          p.FPS,
		ETA:          p.ETA,
		Bitrate:      p.Bitrate,
		ElapsedSecs:  p.ElapsedSecs,
	})
}

func summaryOf(outcome *BatchOutcome) reporter.BatchSummary {
	failures := make([]reporter.FileFailure, len(outcome.Failures))
	for i, f := range outcome.Failures {
		failures[i] = reporter.FileFailure{Filename: f.Filename, Reason: f.Reason}
	}
	return reporter.BatchSummary{
		TotalFiles:     outcome.Total,
		Succeeded:      outcome.Success,
		Failed:         outcome.Failure,
		Skipped:        outcome.Skipped,
		Cancelled:      outcome.Cancelled,
		Message:        outcome.Message,
		DestinationDir: outcome.DestinationDir,
		TotalDuration:  outcome.Duration,
		Failures:       failures,
		Saved:          outcome.Saved,
	}
}
