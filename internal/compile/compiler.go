// Package compile runs the release build of the checked-out crate.
package compile

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"git.home.luguber.info/inful/rectpromote/internal/artifact"
	"git.home.luguber.info/inful/rectpromote/internal/config"
	"git.home.luguber.info/inful/rectpromote/internal/logfields"
	"git.home.luguber.info/inful/rectpromote/internal/process"
)

// Compiler builds the project and returns the path of the produced artifact.
type Compiler interface {
	Compile(ctx context.Context) (string, error)
}

// CargoCompiler runs `cargo build --release` in the checkout.
type CargoCompiler struct {
	runner    process.Runner
	dir       string
	targetDir string
	cfg       config.CompileConfig
	goos      string
}

// NewCargoCompiler creates a compiler for the crate checked out at dir whose
// build output goes to targetDir.
func NewCargoCompiler(runner process.Runner, dir, targetDir string, cfg config.CompileConfig) *CargoCompiler {
	return &CargoCompiler{runner: runner, dir: dir, targetDir: targetDir, cfg: cfg, goos: runtime.GOOS}
}

// Command returns the build invocation.
func (c *CargoCompiler) Command() process.Command {
	args := []string{"build", "--release"}
	if c.customTargetDir() {
		args = append(args, "--target-dir", c.targetDir)
	}
	if len(c.cfg.Features) > 0 {
		args = append(args, "--features", strings.Join(c.cfg.Features, ","))
	}
	args = append(args, c.cfg.ExtraArgs...)
	return process.Command{Name: c.cfg.Command, Args: args, Dir: c.dir}
}

// ArtifactPath is where cargo places the release library. The compiler does
// not check that it exists; publishing does.
func (c *CargoCompiler) ArtifactPath() string {
	return artifact.ReleasePath(c.targetDir, c.cfg.CrateName, c.goos)
}

func (c *CargoCompiler) Compile(ctx context.Context) (string, error) {
	cmd := c.Command()
	slog.Info("Compiling release build", logfields.Command(cmd.String()), logfields.Path(c.dir))
	start := time.Now()
	if err := c.runner.Run(ctx, cmd); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", classify(&CompileError{Command: cmd.String(), Dir: c.dir, Err: err})
	}
	out := c.ArtifactPath()
	slog.Info("Release build finished", logfields.Path(out), logfields.Duration(time.Since(start)))
	return out, nil
}

// customTargetDir reports whether the target dir differs from cargo's default
// <dir>/target, in which case it must be passed explicitly.
func (c *CargoCompiler) customTargetDir() bool {
	return filepath.Clean(c.targetDir) != filepath.Join(c.dir, config.DefaultTargetDir)
}
