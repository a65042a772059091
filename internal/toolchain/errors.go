package toolchain

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// ToolchainUpdateError reports that the self-update mechanism was unavailable
// or failed (including network failures it ran into).
type ToolchainUpdateError struct {
	Command string
	Err     error
}

func (e *ToolchainUpdateError) Error() string {
	return fmt.Sprintf("toolchain update %q failed: %v", e.Command, e.Err)
}
func (e *ToolchainUpdateError) Unwrap() error { return e.Err }

func classify(e *ToolchainUpdateError) error {
	return ferrors.WrapError(e, ferrors.CategoryToolchain, "toolchain update failed").
		Fatal().
		WithContext("command", e.Command).
		Build()
}
