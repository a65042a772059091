// Package commands holds the rectpromote CLI definition and its subcommands.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rectpromote/internal/config"
)

// LogLevelEnv overrides the log level (debug, info, warn, error).
const LogLevelEnv = "RECTPROMOTE_LOG_LEVEL"

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config   string           `short:"c" help:"Configuration file path (default rectpromote.yaml, optional)" type:"path"`
	Checkout string           `help:"Working copy to build (overrides config)" type:"path"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run         RunCmd     `cmd:"" default:"1" help:"Run the update, sync, compile and publish pipeline (default)"`
	Init        InitCmd    `cmd:"" help:"Write an example configuration file"`
	VersionInfo VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	} else if env := os.Getenv(LogLevelEnv); env != "" {
		level = parseLevel(env, level)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return fallback
	}
	return l
}

// configPath returns the config file to load and whether it must exist.
// Only an explicit --config is required to be present.
func (c *CLI) configPath() (string, bool) {
	if c.Config == "" {
		return config.DefaultConfigFile, false
	}
	return c.Config, true
}
