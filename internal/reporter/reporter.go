package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Hardware(summary HardwareSummary)
	BatchStarted(info BatchStartInfo)
	FileStarted(info FileStartInfo)
	JobProgress(progress ProgressSnapshot)
	FileProgress(context FileProgressContext)
	FileFailed(failure FileFailure)
	FileSaved(saved SavedFile)
	DestinationRequested(prompt DestinationPrompt)
	Warning(message string)
	Error(err ReporterError)
	BatchComplete(summary BatchSummary)
	OperationComplete(message string)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Hardware(HardwareSummary)               {}
func (NullReporter) BatchStarted(BatchStartInfo)            {}
func (NullReporter) FileStarted(FileStartInfo)              {}
func (NullReporter) JobProgress(ProgressSnapshot)           {}
func (NullReporter) FileProgress(FileProgressContext)       {}
func (NullReporter) FileFailed(FileFailure)                 {}
func (NullReporter) FileSaved(SavedFile)                    {}
func (NullReporter) DestinationRequested(DestinationPrompt) {}
func (NullReporter) Warning(string)                         {}
func (NullReporter) Error(ReporterError)                    {}
func (NullReporter) BatchComplete(BatchSummary)             {}
func (NullReporter) OperationComplete(string)               {}
func (NullReporter) Verbose(string)                         {}
