package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# rectpromote configuration. Every key is optional; the values below are the defaults.
checkout: .
toolchain:
  command: rustup
  # channel: nightly
  probe_command: rustc
sync:
  # remote: origin
  # branch: master
  # token_env: GIT_TOKEN
compile:
  command: cargo
  crate_name: rectangular_promotion
  target_dir: target
publish:
  directory: ..
  file_name: rectangular_promotion.so
# metrics:
#   textfile: /var/lib/node_exporter/textfile/rectpromote.prom
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
