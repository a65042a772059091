package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			Fatal().
			WithContext("file", "rectpromote.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, ErrorContext{"file": "rectpromote.yaml"}, err.Context())
	})

	t.Run("Wrapped cause is reachable", func(t *testing.T) {
		cause := stderrors.New("disk full")
		err := WrapError(cause, CategoryFileSystem, "publish failed").Build()
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "[filesystem:error] publish failed: disk full")
	})

	t.Run("Classification survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("step: %w", NewError(CategoryGit, "diverged").Build())
		assert.True(t, HasCategory(err, CategoryGit))
		assert.False(t, HasCategory(stderrors.New("plain"), CategoryGit))
	})

	t.Run("RuntimeError is fatal", func(t *testing.T) {
		cause := stderrors.New("another run is in progress")
		err := RuntimeError("pipeline already running").WithCause(cause).Build()
		assert.Equal(t, CategoryRuntime, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.ErrorIs(t, err, cause)
	})
}

type exitErr struct{ code int }

func (e exitErr) Error() string  { return fmt.Sprintf("exit status %d", e.code) }
func (e exitErr) ExitCode() int { return e.code }

func TestExitCodeOf(t *testing.T) {
	code, ok := ExitCodeOf(fmt.Errorf("wrapped: %w", exitErr{code: 101}))
	require.True(t, ok)
	assert.Equal(t, 101, code)

	_, ok = ExitCodeOf(exitErr{code: 0})
	assert.False(t, ok)
	_, ok = ExitCodeOf(stderrors.New("plain"))
	assert.False(t, ok)
}
