package commands

import (
	"fmt"

	"git.home.luguber.info/inful/rectpromote/internal/config"
	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path, _ := root.configPath()
	if err := config.Init(path, i.Force); err != nil {
		return ferrors.ConfigError("initialization failed").WithCause(err).WithContext("path", path).Build()
	}
	fmt.Printf("Wrote configuration to %s\n", path)
	return nil
}
