package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/rectpromote/internal/logfields"
)

// Command describes one external command invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands.
type Runner interface {
	// Run executes cmd with its output streamed to the terminal.
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns its stdout.
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// ErrNotFound indicates the command binary is not on PATH.
var ErrNotFound = errors.New("command not found")

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Cmd  string
	Code int
	Err  error
}

func (e *ExitError) Error() string { return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code) }
func (e *ExitError) Unwrap() error { return e.Err }
func (e *ExitError) ExitCode() int { return e.Code }

// ExecRunner runs commands with os/exec. Output goes to Stdout/Stderr, which
// default to the process's own streams so diagnostics reach the user as-is.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the terminal.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd, err := r.command(ctx, c)
	if err != nil {
		return err
	}
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	slog.Debug("Executing command", logfields.Command(c.String()), logfields.Path(c.Dir))
	return wrapExit(c, cmd.Run())
}

func (r *ExecRunner) Output(ctx context.Context, c Command) ([]byte, error) {
	cmd, err := r.command(ctx, c)
	if err != nil {
		return nil, err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			slog.Debug("command stderr", logfields.Command(c.String()), slog.String("stderr", msg))
		}
		return out, wrapExit(c, err)
	}
	return out, nil
}

func (r *ExecRunner) command(ctx context.Context, c Command) (*exec.Cmd, error) {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, c.Name, err)
	}
	// #nosec G204 -- command names come from local configuration, resolved via LookPath
	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	return cmd, nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

func wrapExit(c Command, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		slog.Debug("Command exited with non-zero status", logfields.Command(c.String()), logfields.ExitCode(exitErr.ExitCode()))
		return &ExitError{Cmd: c.String(), Code: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("%s: %w", c.String(), err)
}
