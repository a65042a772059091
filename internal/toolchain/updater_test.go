package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rectpromote/internal/config"
	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
	"git.home.luguber.info/inful/rectpromote/internal/process"
	"git.home.luguber.info/inful/rectpromote/internal/process/processtest"
)

func defaultToolchain() config.ToolchainConfig { return config.Default().Toolchain }

func TestUpdateRunsRustupWithoutArguments(t *testing.T) {
	runner := processtest.NewFakeRunner()
	u := NewRustupUpdater(runner, defaultToolchain())

	_, err := u.Update(context.Background())
	require.NoError(t, err)
	assert.Contains(t, runner.CommandLines(), "rustup update")
	assert.NotContains(t, runner.CommandLines(), "rustup update nightly")
}

func TestUpdateWithChannel(t *testing.T) {
	runner := processtest.NewFakeRunner()
	cfg := defaultToolchain()
	cfg.Channel = "nightly"

	_, err := NewRustupUpdater(runner, cfg).Update(context.Background())
	require.NoError(t, err)
	assert.Contains(t, runner.CommandLines(), "rustup update nightly")
}

func TestUpdateReportsUpgrade(t *testing.T) {
	runner := processtest.NewFakeRunner()
	runner.On("rustc --version", processtest.Response{Output: []byte("rustc 1.80.1 (3f5fd8dd4 2024-08-06)\n")})
	// The probe answers with the new version once the update has run.
	runner.On("rustup update", processtest.Response{Hook: func(process.Command) {
		runner.On("rustc --version", processtest.Response{Output: []byte("rustc 1.81.0 (eeb90cda1 2024-09-04)\n")})
	}})

	res, err := NewRustupUpdater(runner, defaultToolchain()).Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.80.1", res.Before.Semver)
	assert.Equal(t, "v1.81.0", res.After.Semver)
	assert.Equal(t, ChangeUpgraded, res.Change)
	assert.Equal(t, []string{"rustc --version", "rustup update", "rustc --version"}, runner.CommandLines())
}

func TestUpdateFailureIsToolchainUpdateError(t *testing.T) {
	runner := processtest.NewFakeRunner()
	exit := &process.ExitError{Cmd: "rustup update", Code: 1, Err: errors.New("network unreachable")}
	runner.On("rustup update", processtest.Response{Err: exit})

	_, err := NewRustupUpdater(runner, defaultToolchain()).Update(context.Background())
	require.Error(t, err)

	var tue *ToolchainUpdateError
	require.ErrorAs(t, err, &tue)
	assert.Equal(t, "rustup update", tue.Command)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryToolchain))
	code, ok := ferrors.ExitCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)
}

func TestUpdateMissingRustup(t *testing.T) {
	runner := processtest.NewFakeRunner()
	runner.On("rustup update", processtest.Response{Err: process.ErrNotFound})

	_, err := NewRustupUpdater(runner, defaultToolchain()).Update(context.Background())
	var tue *ToolchainUpdateError
	require.ErrorAs(t, err, &tue)
	assert.ErrorIs(t, err, process.ErrNotFound)
}

func TestProbeFailureDoesNotFailUpdate(t *testing.T) {
	runner := processtest.NewFakeRunner()
	runner.On("rustc --version", processtest.Response{Err: process.ErrNotFound})

	res, err := NewRustupUpdater(runner, defaultToolchain()).Update(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ChangeUnknown, res.Change)
}
