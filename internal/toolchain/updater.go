package toolchain

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/rectpromote/internal/config"
	"git.home.luguber.info/inful/rectpromote/internal/logfields"
	"git.home.luguber.info/inful/rectpromote/internal/process"
)

// UpdateResult describes the toolchain before and after an update.
type UpdateResult struct {
	Before Version
	After  Version
	Change Change
}

// Updater brings the host toolchain to its latest version.
type Updater interface {
	Update(ctx context.Context) (UpdateResult, error)
}

// RustupUpdater runs `rustup update [channel]`.
type RustupUpdater struct {
	runner  process.Runner
	command string
	channel string
	probe   string
}

// NewRustupUpdater creates an updater from configuration.
func NewRustupUpdater(runner process.Runner, cfg config.ToolchainConfig) *RustupUpdater {
	return &RustupUpdater{
		runner:  runner,
		command: cfg.Command,
		channel: cfg.Channel,
		probe:   cfg.ProbeCommand,
	}
}

func (u *RustupUpdater) Update(ctx context.Context) (UpdateResult, error) {
	cmd := process.Command{Name: u.command, Args: []string{"update"}}
	if u.channel != "" {
		cmd.Args = append(cmd.Args, u.channel)
	}

	res := UpdateResult{Before: DetectVersion(ctx, u.runner, u.probe)}
	slog.Info("Updating toolchain", logfields.Command(cmd.String()), logfields.Version(res.Before.Raw))

	if err := u.runner.Run(ctx, cmd); err != nil {
		return res, classify(&ToolchainUpdateError{Command: cmd.String(), Err: err})
	}

	res.After = DetectVersion(ctx, u.runner, u.probe)
	res.Change = Compare(res.Before, res.After)
	switch res.Change {
	case ChangeCurrent:
		slog.Info("Toolchain already current", logfields.Version(res.After.Raw))
	case ChangeUpgraded, ChangeChanged:
		slog.Info("Toolchain updated", slog.String("from", res.Before.Raw), slog.String("to", res.After.Raw))
	default:
		slog.Debug("Toolchain version unknown", slog.String("probe", u.probe))
	}
	return res, nil
}
