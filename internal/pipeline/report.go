package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/rectpromote/internal/logfields"
	"git.home.luguber.info/inful/rectpromote/internal/version"
)

// Outcome is the final result of a run.
type Outcome string

const (
	OutcomeRunning  Outcome = "running"
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// StepRecord is the report entry for one step.
type StepRecord struct {
	Name     StepName
	Result   StepResult
	Duration time.Duration
	Err      error
}

// Report is the in-memory record of a run. It is logged and fed to metrics,
// never persisted.
type Report struct {
	RunID   string
	Version string
	Start   time.Time
	End     time.Time
	Steps   []StepRecord
	Outcome Outcome
	Err     error // first error, if any
}

// NewReport starts a report with a new run ID.
func NewReport() *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Version: version.Version,
		Start:   time.Now(),
		Outcome: OutcomeRunning,
	}
}

// Plan registers every step as not started so the report lists the whole
// pipeline even when it stops early.
func (r *Report) Plan(defs []StepDef) {
	r.Steps = make([]StepRecord, len(defs))
	for i, d := range defs {
		r.Steps[i] = StepRecord{Name: d.Name, Result: StepNotStarted}
	}
}

// Record sets the result of a step, adding it if it was not planned.
func (r *Report) Record(name StepName, result StepResult, d time.Duration, err error) {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			r.Steps[i].Result, r.Steps[i].Duration, r.Steps[i].Err = result, d, err
			return
		}
	}
	r.Steps = append(r.Steps, StepRecord{Name: name, Result: result, Duration: d, Err: err})
}

// Step returns the record for name.
func (r *Report) Step(name StepName) (StepRecord, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepRecord{}, false
}

// Duration is the wall time of the run so far, or in total once finished.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Finish stamps the end time and derives the outcome from the step results.
func (r *Report) Finish() {
	r.End = time.Now()
	r.Outcome = OutcomeSuccess
	for _, s := range r.Steps {
		switch s.Result {
		case StepFailed:
			r.Outcome = OutcomeFailed
			return
		case StepCanceled:
			r.Outcome = OutcomeCanceled
			return
		}
	}
}

// LogSummary writes one line per step and a closing line for the run.
func (r *Report) LogSummary(log *slog.Logger) {
	for _, s := range r.Steps {
		attrs := []any{logfields.RunID(r.RunID), logfields.Step(string(s.Name)), logfields.StepResult(string(s.Result))}
		if s.Result.Done() && s.Result != StepSkipped {
			attrs = append(attrs, logfields.Duration(s.Duration))
		}
		log.Debug("Step summary", attrs...)
	}
	attrs := []any{logfields.RunID(r.RunID), slog.String("outcome", string(r.Outcome)), logfields.Duration(r.Duration())}
	if r.Err != nil {
		log.Error("Pipeline failed", append(attrs, logfields.Error(r.Err))...)
		return
	}
	log.Info("Pipeline finished", attrs...)
}
