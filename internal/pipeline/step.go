package pipeline

import (
	"context"
	"fmt"
)

// StepFunc is one unit of pipeline work. Steps hand data forward through st.
type StepFunc func(ctx context.Context, st *State) error

// StepName is a strongly-typed identifier for a pipeline step.
type StepName string

// Canonical step names, in execution order.
const (
	StepUpdateToolchain StepName = "update_toolchain"
	StepSyncSource      StepName = "sync_source"
	StepCompileRelease  StepName = "compile_release"
	StepPublishArtifact StepName = "publish_artifact"
)

// StepErrorKind classifies why a step stopped the run.
type StepErrorKind string

const (
	StepErrorFailed   StepErrorKind = "failed"
	StepErrorCanceled StepErrorKind = "canceled"
)

// StepError wraps the first error of a run with the step that produced it.
type StepError struct {
	Kind StepErrorKind
	Step StepName
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %s %s: %v", e.Step, e.Kind, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// StepResult is the lifecycle state of one step within a run.
type StepResult string

const (
	StepNotStarted StepResult = "not_started"
	StepRunning    StepResult = "running"
	StepSucceeded  StepResult = "succeeded"
	StepFailed     StepResult = "failed"
	StepCanceled   StepResult = "canceled"
	StepSkipped    StepResult = "skipped"
)

// Done reports whether the result is terminal.
func (r StepResult) Done() bool { return r != StepNotStarted && r != StepRunning }

// StepDef pairs a step name with its function. Skipped steps are reported
// but never executed.
type StepDef struct {
	Name StepName
	Fn   StepFunc
	Skip bool
}

// Builder is a fluent builder for ordered step definitions.
type Builder struct{ defs []StepDef }

// NewBuilder creates an empty builder.
func NewBuilder() *Builder { return &Builder{defs: make([]StepDef, 0, 4)} }

// Add appends a step.
func (b *Builder) Add(name StepName, fn StepFunc) *Builder {
	b.defs = append(b.defs, StepDef{Name: name, Fn: fn})
	return b
}

// AddSkippable appends a step that is recorded as skipped when skip is set.
func (b *Builder) AddSkippable(skip bool, name StepName, fn StepFunc) *Builder {
	b.defs = append(b.defs, StepDef{Name: name, Fn: fn, Skip: skip})
	return b
}

// Build returns a copy of the step definitions.
func (b *Builder) Build() []StepDef {
	out := make([]StepDef, len(b.defs))
	copy(out, b.defs)
	return out
}
