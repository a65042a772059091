package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"git.home.luguber.info/inful/rectpromote/internal/compile"
	"git.home.luguber.info/inful/rectpromote/internal/git"
	"git.home.luguber.info/inful/rectpromote/internal/logfields"
	"git.home.luguber.info/inful/rectpromote/internal/metrics"
	"git.home.luguber.info/inful/rectpromote/internal/publish"
	"git.home.luguber.info/inful/rectpromote/internal/toolchain"
)

// Deps are the four collaborators of the build-and-publish pipeline.
type Deps struct {
	Updater      toolchain.Updater
	Synchronizer git.Synchronizer
	Compiler     compile.Compiler
	Publisher    publish.Publisher
}

// Options switch individual steps off.
type Options struct {
	SkipToolchain bool
	SkipSync      bool
}

// Pipeline is the fixed update, sync, compile, publish sequence.
type Pipeline struct {
	deps     Deps
	opts     Options
	observer Observer
}

// NewDefault wires deps into the four-step pipeline.
func NewDefault(deps Deps) *Pipeline {
	return &Pipeline{deps: deps, observer: NoopObserver{}}
}

// WithOptions sets step options.
func (p *Pipeline) WithOptions(opts Options) *Pipeline {
	p.opts = opts
	return p
}

// WithObserver replaces the observer.
func (p *Pipeline) WithObserver(obs Observer) *Pipeline {
	if obs == nil {
		obs = NoopObserver{}
	}
	p.observer = obs
	return p
}

// WithRecorder reports step and run metrics to rec. A nil rec records
// nothing.
func (p *Pipeline) WithRecorder(rec metrics.Recorder) *Pipeline {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return p.WithObserver(RecorderObserver{Recorder: rec})
}

// Steps returns the step definitions in execution order.
func (p *Pipeline) Steps() []StepDef {
	return NewBuilder().
		AddSkippable(p.opts.SkipToolchain, StepUpdateToolchain, p.updateToolchain).
		AddSkippable(p.opts.SkipSync, StepSyncSource, p.syncSource).
		Add(StepCompileRelease, p.compileRelease).
		Add(StepPublishArtifact, p.publishArtifact).
		Build()
}

// Run executes one pipeline run. The returned state is never nil.
func (p *Pipeline) Run(ctx context.Context) (*State, error) {
	st := NewState()
	slog.Info("Starting pipeline", logfields.RunID(st.Report.RunID), logfields.Version(st.Report.Version))
	err := Run(ctx, st, p.Steps(), p.observer)
	return st, err
}

func (p *Pipeline) updateToolchain(ctx context.Context, st *State) error {
	res, err := p.deps.Updater.Update(ctx)
	st.Toolchain = res
	return err
}

func (p *Pipeline) syncSource(ctx context.Context, st *State) error {
	res, err := p.deps.Synchronizer.Sync(ctx)
	st.Sync = res
	return err
}

// errNoArtifactPath is returned when a compiler reports success without
// naming its output.
var errNoArtifactPath = errors.New("compiler returned no artifact path")

func (p *Pipeline) compileRelease(ctx context.Context, st *State) error {
	path, err := p.deps.Compiler.Compile(ctx)
	if err != nil {
		return err
	}
	if path == "" {
		return errNoArtifactPath
	}
	st.ArtifactPath = path
	return nil
}

func (p *Pipeline) publishArtifact(ctx context.Context, st *State) error {
	art, err := p.deps.Publisher.Publish(ctx, st.ArtifactPath)
	if err != nil {
		return err
	}
	st.Artifact = art
	return nil
}
