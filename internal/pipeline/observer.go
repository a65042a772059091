package pipeline

import (
	"time"

	"git.home.luguber.info/inful/rectpromote/internal/metrics"
)

// Observer receives callbacks around step execution and the run lifecycle.
type Observer interface {
	OnStepStart(step StepName)
	OnStepComplete(step StepName, duration time.Duration, result StepResult)
	OnRunComplete(report *Report, st *State)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnStepStart(StepName)                                {}
func (NoopObserver) OnStepComplete(StepName, time.Duration, StepResult) {}
func (NoopObserver) OnRunComplete(*Report, *State)                      {}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnStepStart(StepName) {}

func (r RecorderObserver) OnStepComplete(step StepName, d time.Duration, result StepResult) {
	if r.Recorder == nil {
		return
	}
	if result != StepSkipped {
		r.Recorder.ObserveStepDuration(string(step), d)
	}
	r.Recorder.IncStepResult(string(step), resultLabel(result))
}

func (r RecorderObserver) OnRunComplete(report *Report, st *State) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveRunDuration(report.Duration())
	switch report.Outcome {
	case OutcomeSuccess:
		r.Recorder.IncRunOutcome(metrics.OutcomeSuccess)
		r.Recorder.SetLastSuccess(report.End)
		if st != nil && st.Artifact.Size > 0 {
			r.Recorder.SetArtifactSize(st.Artifact.Size)
		}
	case OutcomeCanceled:
		r.Recorder.IncRunOutcome(metrics.OutcomeCanceled)
	default:
		r.Recorder.IncRunOutcome(metrics.OutcomeFailed)
	}
}

func resultLabel(r StepResult) metrics.ResultLabel {
	switch r {
	case StepSucceeded:
		return metrics.ResultSuccess
	case StepSkipped:
		return metrics.ResultSkipped
	case StepCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultFailed
	}
}
