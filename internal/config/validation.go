package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.Publish.FileName, `/\`) || c.Publish.FileName == "." || c.Publish.FileName == ".." {
		return ferrors.ValidationError("publish.file_name must be a plain file name").
			WithContext("file_name", c.Publish.FileName).
			Build()
	}
	if strings.ContainsAny(c.Compile.CrateName, `/\ `) {
		return ferrors.ValidationError("compile.crate_name must be a crate identifier").
			WithContext("crate_name", c.Compile.CrateName).
			Build()
	}
	for _, arg := range c.Compile.ExtraArgs {
		if arg == "--release" {
			return ferrors.ValidationError("compile.extra_args must not repeat --release").Build()
		}
	}
	if c.Metrics.Textfile != "" && filepath.Ext(c.Metrics.Textfile) != ".prom" {
		return ferrors.ValidationError("metrics.textfile must end in .prom").
			WithContext("textfile", c.Metrics.Textfile).
			Build()
	}
	return nil
}
