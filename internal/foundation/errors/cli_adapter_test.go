package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "git", err: NewError(CategoryGit, "conflict").Build(), expected: 8},
		{name: "network", err: NewError(CategoryNetwork, "unreachable").Build(), expected: 8},
		{name: "filesystem", err: NewError(CategoryFileSystem, "missing artifact").Build(), expected: 11},
		{name: "runtime", err: RuntimeError("lock held").Build(), expected: 12},
		{
			name:     "external exit status wins",
			err:      WrapError(exitErr{code: 101}, CategoryBuild, "cargo failed").Build(),
			expected: 101,
		},
		{name: "unclassified", err: &customError{msg: "unknown"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())
	err := WrapError(fmt.Errorf("exit status 1"), CategoryToolchain, "toolchain update failed").Build()

	assert.Equal(t, "", quiet.FormatError(nil))
	assert.Equal(t, "Error: toolchain update failed", quiet.FormatError(err))
	assert.Contains(t, verbose.FormatError(err), "exit status 1")
	assert.Equal(t, "Error: unknown", quiet.FormatError(&customError{msg: "unknown"}))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	exitCode := -1
	adapter.exit = func(code int) { exitCode = code }

	adapter.HandleError(NewError(CategoryFileSystem, "artifact missing").WithContext("path", "/x").Build())

	assert.Equal(t, 11, exitCode)
	assert.Equal(t, "Error: artifact missing\n", out.String())
	assert.Contains(t, logs.String(), "category=filesystem")
	assert.Contains(t, logs.String(), "path=/x")

	exitCode = -1
	adapter.HandleError(nil)
	assert.Equal(t, -1, exitCode)
}

func TestCLIErrorAdapter_HandleErrorLogsExitCode(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	exitCode := -1
	adapter.exit = func(code int) { exitCode = code }

	adapter.HandleError(WrapError(exitErr{code: 101}, CategoryBuild, "cargo failed").Build())

	assert.Equal(t, 101, exitCode)
	assert.Contains(t, logs.String(), "exit_code=101")
	assert.Contains(t, logs.String(), "category=build")
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
