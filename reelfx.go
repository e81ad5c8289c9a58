// Package reelfx provides a Go library for batch editing short videos with
// FFmpeg.
//
// Every file in a batch gets the same speed change, center zoom and color
// filter. The first rendered file asks the caller where to save it; the rest
// of the batch is auto-named into the same directory.
//
// Basic usage:
//
//	editor, err := reelfx.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := editor.Files().Add("a.mp4", "b.mp4"); err != nil {
//	    log.Fatal(err)
//	}
//	batch, _ := editor.DefaultBatch()
//	outcome, err := editor.Process(ctx, batch, reelfx.AcceptSuggested)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("saved %d of %d\n", outcome.Success, outcome.Total)
package reelfx

import (
	"context"
	"fmt"

	"github.com/five82/reelfx/internal/config"
	"github.com/five82/reelfx/internal/discovery"
	"github.com/five82/reelfx/internal/ffmpeg"
	"github.com/five82/reelfx/internal/ffprobe"
	"github.com/five82/reelfx/internal/filter"
	"github.com/five82/reelfx/internal/history"
	"github.com/five82/reelfx/internal/logging"
	"github.com/five82/reelfx/internal/processing"
	"github.com/five82/reelfx/internal/reporter"
	"github.com/five82/reelfx/internal/util"
)

// Re-exported types.
type (
	Config             = config.Config
	BatchConfig        = processing.BatchConfig
	BatchOutcome       = processing.BatchOutcome
	FileList           = processing.FileList
	DestinationRequest = processing.DestinationRequest
	DestinationChooser = processing.DestinationChooser
	PreviewResult      = processing.PreviewResult
	JobResult          = processing.JobResult
	Selection          = filter.Selection
	CustomValues       = filter.CustomValues
	Preset             = filter.Preset
	Reporter           = reporter.Reporter
	Runner             = ffmpeg.Runner
)

// ErrBatchRunning is returned when a batch is started, or the file list is
// changed, while another batch is in progress.
var ErrBatchRunning = processing.ErrBatchRunning

// AcceptSuggested answers every destination request with its suggestion.
func AcceptSuggested(*DestinationRequest) (string, bool) { return "", true }

// Editor runs batches and previews with one configuration.
type Editor struct {
	cfg      *config.Config
	catalog  *filter.Catalog
	runner   ffmpeg.Runner
	jobs     *processing.JobRunner
	orch     *processing.Orchestrator
	previews *processing.PreviewRunner
	latest   processing.Latest
	rep      reporter.Reporter
	history  *history.Store
}

type settings struct {
	cfg     *config.Config
	runner  ffmpeg.Runner
	rep     reporter.Reporter
	history *history.Store
}

// Option configures the editor.
type Option func(*settings)

// WithConfig uses cfg instead of the built-in defaults.
func WithConfig(cfg *Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithRunner replaces the ffmpeg process runner. Media probing is disabled
// for custom runners.
func WithRunner(r Runner) Option {
	return func(s *settings) { s.runner = r }
}

// WithReporter sends batch events to rep.
func WithReporter(rep Reporter) Option {
	return func(s *settings) { s.rep = rep }
}

// WithEventHandler sends batch events to handler.
func WithEventHandler(handler EventHandler) Option {
	return func(s *settings) {
		if handler != nil {
			s.rep = newEventReporter(handler)
		}
	}
}

// WithHistory records every finished batch in store.
func WithHistory(store *history.Store) Option {
	return func(s *settings) { s.history = store }
}

// New creates an editor.
func New(opts ...Option) (*Editor, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cfg := s.cfg
	if cfg == nil {
		var err error
		if cfg, err = config.Resolved(); err != nil {
			return nil, err
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	runner := s.runner
	probe := s.runner == nil
	if runner == nil {
		runner = ffmpeg.NewExecRunner(cfg.Processing.FFmpegBinary)
	}
	rep := s.rep
	if rep == nil {
		rep = reporter.NullReporter{}
	}

	if n, err := util.CleanupStaleTempFiles(cfg.Processing.TempDir, processing.TempPrefix, processing.StaleAge); err != nil {
		logging.Warn("failed to clean temp directory", "dir", cfg.Processing.TempDir, "error", err)
	} else if n > 0 {
		logging.Debug("removed stale temp renders", "dir", cfg.Processing.TempDir, "count", n)
	}

	jobs := processing.NewJobRunner(runner, cfg.EncodeSettings(), cfg.Processing.TempDir)
	jobs.PreviewTimeout = cfg.PreviewTimeout()
	jobs.FrameTimeout = cfg.FrameTimeout()
	if probe {
		jobs.Probe = func(path string) (*ffprobe.MediaInfo, error) {
			return ffprobe.Probe(path, ffprobe.DefaultTimeout)
		}
	}

	return &Editor{
		cfg:      cfg,
		catalog:  catalog,
		runner:   runner,
		jobs:     jobs,
		orch:     processing.NewOrchestrator(jobs, rep),
		previews: processing.NewPreviewRunner(jobs, cfg.Paths.PreviewDir),
		rep:      rep,
		history:  s.history,
	}, nil
}

// Config returns the editor configuration.
func (e *Editor) Config() *Config { return e.cfg }

// Catalog returns the filter presets available by name.
func (e *Editor) Catalog() []Preset { return e.catalog.Presets() }

// Files returns the input list for the next batch.
func (e *Editor) Files() *FileList { return e.orch.Files() }

// Requests exposes destination requests for callers that answer them
// directly instead of passing a chooser to Process.
func (e *Editor) Requests() <-chan *DestinationRequest { return e.orch.Requests() }

// Select resolves a filter name. "custom" selects values.
func (e *Editor) Select(name string, values CustomValues) (Selection, error) {
	return e.catalog.Select(name, values)
}

// Batch builds a batch configuration from explicit settings.
func (e *Editor) Batch(speed, zoom float64, sel Selection) BatchConfig {
	return BatchConfig{
		Speed:        speed,
		Zoom:         zoom,
		Selection:    sel,
		OutputSubdir: e.cfg.Processing.OutputSubdir,
	}
}

// DefaultBatch builds a batch configuration from the configured speed, zoom
// and filter.
func (e *Editor) DefaultBatch() (BatchConfig, error) {
	sel, err := e.Select(e.cfg.Processing.Filter, filter.Defaults())
	if err != nil {
		return BatchConfig{}, err
	}
	return e.Batch(e.cfg.Processing.Speed, e.cfg.Processing.Zoom, sel), nil
}

// Process runs one batch over Files(). When choose is nil the caller must
// answer Requests() itself.
func (e *Editor) Process(ctx context.Context, batch BatchConfig, choose DestinationChooser) (*BatchOutcome, error) {
	if e.orch.State() != processing.StateIdle {
		return nil, ErrBatchRunning
	}
	e.rep.Hardware(e.Hardware(ctx))
	outcome, err := e.orch.RunWith(ctx, batch, choose)
	if err != nil {
		return nil, err
	}

	if e.history != nil {
		if _, err := e.history.Record(context.WithoutCancel(ctx), outcome); err != nil {
			logging.Warn("failed to record batch history", "error", err)
			e.rep.Warning(fmt.Sprintf("batch history not saved: %v", err))
		}
	}
	return outcome, nil
}

// Preview renders sel onto a still image.
func (e *Editor) Preview(ctx context.Context, imagePath string, sel Selection) PreviewResult {
	return e.previews.Preview(ctx, imagePath, sel)
}

// PreviewLatest renders like Preview and keeps only the newest result. It
// reports false when a later call already finished; that result's file has
// been removed. Earlier kept previews are removed when replaced.
func (e *Editor) PreviewLatest(ctx context.Context, imagePath string, sel Selection) (PreviewResult, bool) {
	res := e.previews.Preview(ctx, imagePath, sel)
	if !res.Success {
		return res, false
	}
	return res, e.latest.Offer(res)
}

// Thumbnail extracts the first frame of a video.
func (e *Editor) Thumbnail(ctx context.Context, videoPath string) JobResult {
	return e.previews.Thumbnail(ctx, videoPath)
}

// Hardware describes the host and the ffmpeg build.
func (e *Editor) Hardware(ctx context.Context) reporter.HardwareSummary {
	info := util.GetSystemInfo()
	summary := reporter.HardwareSummary{
		Hostname: info.Hostname,
		OS:       info.OS,
		Arch:     info.Arch,
		NumCPU:   info.NumCPU,
	}
	if _, ok := e.runner.(*ffmpeg.ExecRunner); ok {
		if v, err := ffmpeg.Version(ctx, e.cfg.Processing.FFmpegBinary); err == nil {
			summary.FFmpegVersion = v
		}
	}
	return summary
}

// FindVideos finds video files in a directory.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}
