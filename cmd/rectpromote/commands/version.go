package commands

import (
	"fmt"

	"git.home.luguber.info/inful/rectpromote/internal/version"
)

// VersionCmd prints build information.
type VersionCmd struct{}

func (VersionCmd) Run(_ *Global, _ *CLI) error {
	fmt.Println(version.String())
	return nil
}
