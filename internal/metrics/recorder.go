package metrics

import "time"

// ResultLabel enumerates page assembly outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultNotFound ResultLabel = "not_found"
	ResultInvalid  ResultLabel = "invalid"
	ResultFailed   ResultLabel = "failed"
)

// Recorder defines observability hooks for page assembly and content store metrics.
type Recorder interface {
	ObservePageDuration(documentType string, d time.Duration)
	IncPageResult(documentType string, result ResultLabel)
	IncSectionRendered(component string)
	IncSectionSkipped(tag string)
	ObserveQueryDuration(kind string, d time.Duration, success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(string, time.Duration)        {}
func (NoopRecorder) IncPageResult(string, ResultLabel)                {}
func (NoopRecorder) IncSectionRendered(string)                        {}
func (NoopRecorder) IncSectionSkipped(string)                         {}
func (NoopRecorder) ObserveQueryDuration(string, time.Duration, bool) {}
