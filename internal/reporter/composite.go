package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) Hardware(summary HardwareSummary) {
	for _, r := range c.reporters {
		r.Hardware(summary)
	}
}

func (c *CompositeReporter) BatchStarted(info BatchStartInfo) {
	for _, r := range c.reporters {
		r.BatchStarted(info)
	}
}

func (c *CompositeReporter) FileStarted(info FileStartInfo) {
	for _, r := range c.reporters {
		r.FileStarted(info)
	}
}

func (c *CompositeReporter) JobProgress(progress ProgressSnapshot) {
	for _, r := range c.reporters {
		r.JobProgress(progress)
	}
}

func (c *CompositeReporter) FileProgress(context FileProgressContext) {
	for _, r := range c.reporters {
		r.FileProgress(context)
	}
}

func (c *CompositeReporter) FileFailed(failure FileFailure) {
	for _, r := range c.reporters {
		r.FileFailed(failure)
	}
}

func (c *CompositeReporter) FileSaved(saved SavedFile) {
	for _, r := range c.reporters {
		r.FileSaved(saved)
	}
}

func (c *CompositeReporter) DestinationRequested(prompt DestinationPrompt) {
	for _, r := range c.reporters {
		r.DestinationRequested(prompt)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) BatchComplete(summary BatchSummary) {
	for _, r := range c.reporters {
		r.BatchComplete(summary)
	}
}

func (c *CompositeReporter) OperationComplete(message string) {
	for _, r := range c.reporters {
		r.OperationComplete(message)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
