package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the fixed paths and commands of a bare invocation.
const (
	DefaultConfigFile      = "rectpromote.yaml"
	DefaultToolchainCmd    = "rustup"
	DefaultProbeCmd        = "rustc"
	DefaultCompileCmd      = "cargo"
	DefaultCrateName       = "rectangular_promotion"
	DefaultTargetDir       = "target"
	DefaultPublishDir      = ".."
	DefaultPublishFileName = "rectangular_promotion.so"
)

// Config represents the application configuration.
type Config struct {
	Checkout  string          `yaml:"checkout"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Sync      SyncConfig      `yaml:"sync"`
	Compile   CompileConfig   `yaml:"compile"`
	Publish   PublishConfig   `yaml:"publish"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ToolchainConfig controls the toolchain self-update step.
type ToolchainConfig struct {
	Skip         bool   `yaml:"skip,omitempty"`
	Command      string `yaml:"command,omitempty"`
	Channel      string `yaml:"channel,omitempty"` // empty => `rustup update` with no arguments
	ProbeCommand string `yaml:"probe_command,omitempty"`
}

// SyncConfig controls the fast-forward of the working copy.
type SyncConfig struct {
	Skip     bool   `yaml:"skip,omitempty"`
	Remote   string `yaml:"remote,omitempty"` // empty => branch tracking config, then origin
	Branch   string `yaml:"branch,omitempty"` // empty => branch tracking config, then current branch
	Username string `yaml:"username,omitempty"`
	TokenEnv string `yaml:"token_env,omitempty"` // env var holding an HTTPS token
}

// CompileConfig controls the release build.
type CompileConfig struct {
	Command   string   `yaml:"command,omitempty"`
	CrateName string   `yaml:"crate_name,omitempty"`
	TargetDir string   `yaml:"target_dir,omitempty"`
	Features  []string `yaml:"features,omitempty"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
}

// PublishConfig controls where the artifact is copied.
type PublishConfig struct {
	Directory string `yaml:"directory,omitempty"` // relative paths resolve against the checkout
	FileName  string `yaml:"file_name,omitempty"`
}

// MetricsConfig enables the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns a configuration equivalent to running with no config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from path. A missing file yields the defaults unless
// required is set, which is the case when the path was given explicitly.
func Load(path string, required bool) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Checkout == "" {
		c.Checkout = "."
	}
	if c.Toolchain.Command == "" {
		c.Toolchain.Command = DefaultToolchainCmd
	}
	if c.Toolchain.ProbeCommand == "" {
		c.Toolchain.ProbeCommand = DefaultProbeCmd
	}
	if c.Compile.Command == "" {
		c.Compile.Command = DefaultCompileCmd
	}
	if c.Compile.CrateName == "" {
		c.Compile.CrateName = DefaultCrateName
	}
	if c.Compile.TargetDir == "" {
		c.Compile.TargetDir = DefaultTargetDir
	}
	if c.Publish.Directory == "" {
		c.Publish.Directory = DefaultPublishDir
	}
	if c.Publish.FileName == "" {
		c.Publish.FileName = DefaultPublishFileName
	}
}

// CheckoutDir returns the absolute path of the working copy.
func (c *Config) CheckoutDir() (string, error) {
	return filepath.Abs(c.Checkout)
}

// TargetDir returns the absolute build-output directory.
func (c *Config) TargetDir() (string, error) {
	return c.resolve(c.Compile.TargetDir)
}

// DestinationPath returns the absolute path the artifact is published to.
func (c *Config) DestinationPath() (string, error) {
	dir, err := c.resolve(c.Publish.Directory)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Publish.FileName), nil
}

func (c *Config) resolve(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	checkout, err := c.CheckoutDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(checkout, p), nil
}
