package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

func TestLoadMissingOptionalFileYieldsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultConfigFile, false)
	require.NoError(t, err)

	want := &Config{
		Checkout:  ".",
		Toolchain: ToolchainConfig{Command: "rustup", ProbeCommand: "rustc"},
		Compile:   CompileConfig{Command: "cargo", CrateName: "rectangular_promotion", TargetDir: "target"},
		Publish:   PublishConfig{Directory: "..", FileName: "rectangular_promotion.so"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingRequiredFileFails(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("nope.yaml", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")
}

func TestLoadExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RP_CHANNEL", "nightly")

	yml := `
toolchain:
  channel: ${RP_CHANNEL}
sync:
  skip: true
compile:
  features: [python]
publish:
  directory: /srv/python
  file_name: rp.so
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(yml), 0o600))

	cfg, err := Load("c.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, "nightly", cfg.Toolchain.Channel)
	assert.True(t, cfg.Sync.Skip)
	assert.Equal(t, []string{"python"}, cfg.Compile.Features)
	assert.Equal(t, "cargo", cfg.Compile.Command)

	dst, err := cfg.DestinationPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/python", "rp.so"), dst)
}

func TestLoadDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RP_TARGET", "from-process")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RP_TARGET=from-file\nRP_CRATE=from_env_file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("RP_CRATE") })

	yml := "compile:\n  target_dir: ${RP_TARGET}\n  crate_name: ${RP_CRATE}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(yml), 0o600))

	cfg, err := Load("c.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Compile.TargetDir)
	assert.Equal(t, "from_env_file", cfg.Compile.CrateName)
}

func TestDefaultPathsResolveAgainstCheckout(t *testing.T) {
	checkout := t.TempDir()
	cfg := Default()
	cfg.Checkout = checkout

	dst, err := cfg.DestinationPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(checkout), "rectangular_promotion.so"), dst)

	target, err := cfg.TargetDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(checkout, "target"), target)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"file name with separator", func(c *Config) { c.Publish.FileName = "a/b.so" }},
		{"file name dotdot", func(c *Config) { c.Publish.FileName = ".." }},
		{"crate name with space", func(c *Config) { c.Compile.CrateName = "bad name" }},
		{"duplicate release flag", func(c *Config) { c.Compile.ExtraArgs = []string{"--release"} }},
		{"textfile extension", func(c *Config) { c.Metrics.Textfile = "/tmp/metrics.txt" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		})
	}
	require.NoError(t, Default().Validate())
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	t.Chdir(dir)
	cfg, err := Load(path, true)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("example config should equal defaults (-want +got):\n%s", diff)
	}
}
