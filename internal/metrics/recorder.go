package metrics

import "time"

// Stage names used by the report pipeline.
const (
	StageFigures = "figures"
	StageConfig  = "config"
	StageParts   = "parts"
	StageMenu    = "menu"
	StageHeader  = "header"
	StageContent = "content"
	StageLayout  = "layout"
	StageWrite   = "write"
)

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for report builds.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncReportOutcome(result ResultLabel)
	SetFigures(n int)
	SetParts(n int)
	ObserveReportBytes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncReportOutcome(ResultLabel)               {}
func (NoopRecorder) SetFigures(int)                             {}
func (NoopRecorder) SetParts(int)                               {}
func (NoopRecorder) ObserveReportBytes(int)                     {}

// Track runs fn as stage, recording its duration and result.
func Track(r Recorder, stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.ObserveStageDuration(stage, time.Since(start))
	if err != nil {
		r.IncStageResult(stage, ResultFailed)
		return err
	}
	r.IncStageResult(stage, ResultSuccess)
	return nil
}
