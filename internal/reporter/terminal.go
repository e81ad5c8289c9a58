package reporter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/reelfx/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	out        io.Writer
	errOut     io.Writer
	progress   *progressbar.ProgressBar
	maxPercent float32
	verbose    bool
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
	faint      *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return NewTerminalReporterWithWriters(os.Stdout, os.Stderr, verbose)
}

// NewTerminalReporterWithWriters creates a terminal reporter on custom writers.
func NewTerminalReporterWithWriters(out, errOut io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
		faint:   color.New(color.Faint),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) section(title string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, title)
}

func (r *TerminalReporter) Hardware(summary HardwareSummary) {
	r.section("HARDWARE")
	r.printLabel(10, "Hostname:", summary.Hostname)
	r.printLabel(10, "Platform:", fmt.Sprintf("%s/%s, %d CPUs", summary.OS, summary.Arch, summary.NumCPU))
	if summary.FFmpegVersion != "" {
		r.printLabel(10, "FFmpeg:", summary.FFmpegVersion)
	}
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	r.section("BATCH")
	const w = 8
	r.printLabel(w, "Files:", fmt.Sprintf("%d", info.TotalFiles))
	r.printLabel(w, "Speed:", util.FormatFactor(info.Speed))
	r.printLabel(w, "Zoom:", util.FormatFactor(info.Zoom))
	r.printLabel(w, "Filter:", info.Filter)
	if r.verbose {
		r.printLabel(w, "vf:", orNone(info.VideoFilter))
		r.printLabel(w, "af:", orNone(info.AudioFilter))
	}
	for i, name := range info.FileList {
		_, _ = fmt.Fprintf(r.out, "  %d. %s\n", i+1, name)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func (r *TerminalReporter) FileStarted(info FileStartInfo) {
	_, _ = fmt.Fprintf(r.out, "\n%s %s of %d: %s",
		r.magenta.Sprint("›"),
		r.bold.Sprint(info.CurrentFile),
		info.TotalFiles,
		info.InputFile)
	if info.Duration != "" {
		_, _ = fmt.Fprintf(r.out, " (%s)", info.Duration)
	}
	_, _ = fmt.Fprintln(r.out)

	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Rendering [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) JobProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := min(max(progress.Percent, 0), 100)
	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	var desc string
	if progress.ETA > 0 {
		desc = fmt.Sprintf("speed %.1fx, eta %s",
			progress.Speed, util.FormatDurationFromSecs(int64(progress.ETA.Seconds())))
	} else {
		desc = fmt.Sprintf("speed %.1fx, %s done", progress.Speed, util.FormatDuration(progress.ElapsedSecs))
	}
	r.progress.Describe(desc)
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	r.finishProgress()
	_, _ = fmt.Fprintf(r.out, "  %s %d/%d (%s ok, %s failed, %d skipped)\n",
		r.faint.Sprint("progress"),
		context.CurrentFile,
		context.TotalFiles,
		r.green.Sprint(context.Succeeded),
		r.red.Sprint(context.Failed),
		context.Skipped)
}

func (r *TerminalReporter) FileFailed(failure FileFailure) {
	r.finishProgress()
	_, _ = fmt.Fprintf(r.out, "  %s %s: %s\n", r.red.Sprint("✗"), failure.Filename, failure.Reason)
}

func (r *TerminalReporter) FileSaved(saved SavedFile) {
	r.finishProgress()
	_, _ = fmt.Fprintf(r.out, "  %s %s %s (%s)\n",
		r.green.Sprint("✓"),
		r.bold.Sprint("Saved to"),
		r.green.Sprint(saved.OutputPath),
		util.FormatDurationFromSecs(int64(saved.Elapsed.Seconds())))
}

func (r *TerminalReporter) DestinationRequested(prompt DestinationPrompt) {
	r.finishProgress()
	r.section("SAVE")
	r.printLabel(10, "Rendered:", prompt.Filename)
	r.printLabel(10, "Suggested:", prompt.SuggestedPath)
}

func (r *TerminalReporter) Warning(message string) {
	r.finishProgress()
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.yellow.Fprintf(r.out, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()
	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.red.Fprintf(r.errOut, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.errOut, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.faint.Sprint(message))
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.finishProgress()
	r.section("BATCH SUMMARY")
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.Succeeded, summary.TotalFiles))
	_, _ = fmt.Fprintf(r.out, "  Failed: %s, skipped: %d\n", r.red.Sprint(summary.Failed), summary.Skipped)
	_, _ = fmt.Fprintf(r.out, "  Time: %s\n", util.FormatDurationFromSecs(int64(summary.TotalDuration.Seconds())))
	if summary.DestinationDir != "" {
		_, _ = fmt.Fprintf(r.out, "  Saved to: %s\n", r.green.Sprint(summary.DestinationDir))
	}
	if summary.Cancelled {
		_, _ = r.yellow.Fprintf(r.out, "  %s\n", summary.Message)
	}

	if len(summary.Failures) == 0 {
		return
	}
	shown, hidden := ListedFailures(summary.Failures)
	_, _ = fmt.Fprintln(r.out, renderFailures(shown))
	if hidden > 0 {
		_, _ = fmt.Fprintf(r.out, "  ... and %d more\n", hidden)
	}
}

func renderFailures(failures []FileFailure) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Reason"})
	for _, f := range failures {
		tw.AppendRow(table.Row{f.Filename, f.Reason})
	}
	return tw.Render()
}
