package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/rectpromote/internal/compile"
	"git.home.luguber.info/inful/rectpromote/internal/config"
	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
	"git.home.luguber.info/inful/rectpromote/internal/git"
	"git.home.luguber.info/inful/rectpromote/internal/logfields"
	"git.home.luguber.info/inful/rectpromote/internal/metrics"
	"git.home.luguber.info/inful/rectpromote/internal/pipeline"
	"git.home.luguber.info/inful/rectpromote/internal/process"
	"git.home.luguber.info/inful/rectpromote/internal/publish"
	"git.home.luguber.info/inful/rectpromote/internal/runlock"
	"git.home.luguber.info/inful/rectpromote/internal/toolchain"
)

// RunCmd implements the default 'run' command.
type RunCmd struct {
	SkipToolchain bool `help:"Do not run the toolchain update step"`
	SkipSync      bool `help:"Do not fast-forward the working copy"`
}

func (r *RunCmd) Run(ctx context.Context, _ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if r.SkipToolchain {
		cfg.Toolchain.Skip = true
	}
	if r.SkipSync {
		cfg.Sync.Skip = true
	}
	return RunPipeline(ctx, cfg, process.NewExecRunner())
}

func (c *CLI) loadConfig() (*config.Config, error) {
	path, required := c.configPath()
	cfg, err := config.Load(path, required)
	if err != nil {
		if _, ok := ferrors.AsClassified(err); ok {
			return nil, err
		}
		return nil, ferrors.ConfigError("failed to load configuration").WithCause(err).WithContext("path", path).Build()
	}
	if c.Checkout != "" {
		cfg.Checkout = c.Checkout
	}
	return cfg, nil
}

// RunPipeline wires the configured collaborators, holds the run lock for the
// destination and executes one run.
func RunPipeline(ctx context.Context, cfg *config.Config, runner process.Runner) error {
	checkout, err := cfg.CheckoutDir()
	if err != nil {
		return ferrors.ConfigError("invalid checkout path").WithCause(err).Build()
	}
	targetDir, err := cfg.TargetDir()
	if err != nil {
		return ferrors.ConfigError("invalid target directory").WithCause(err).Build()
	}
	dst, err := cfg.DestinationPath()
	if err != nil {
		return ferrors.ConfigError("invalid publish destination").WithCause(err).Build()
	}

	lock, err := runlock.Acquire(runlock.PathFor(dst))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			slog.Warn("Failed to release run lock", logfields.Path(lock.Path()), logfields.Error(err))
		}
	}()

	p := pipeline.NewDefault(pipeline.Deps{
		Updater:      toolchain.NewRustupUpdater(runner, cfg.Toolchain),
		Synchronizer: git.NewClient(checkout, cfg.Sync),
		Compiler:     compile.NewCargoCompiler(runner, checkout, targetDir, cfg.Compile),
		Publisher:    publish.NewFilePublisher(dst),
	}).WithOptions(pipeline.Options{
		SkipToolchain: cfg.Toolchain.Skip,
		SkipSync:      cfg.Sync.Skip,
	})

	var textfile *metrics.Textfile
	if cfg.Metrics.Textfile != "" {
		textfile = metrics.NewTextfile(cfg.Metrics.Textfile)
		p.WithRecorder(textfile.Recorder)
	}

	st, runErr := p.Run(ctx)
	st.Report.LogSummary(slog.Default())

	if textfile != nil {
		if err := textfile.Flush(); err != nil {
			slog.Warn("Failed to export metrics", logfields.Error(err))
		}
	}
	return runErr
}
