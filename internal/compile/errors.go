package compile

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// CompileError reports a failed release build: a source error, a missing
// dependency, a linker failure, or a missing compiler.
type CompileError struct {
	Command string
	Dir     string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("release build %q failed: %v", e.Command, e.Err)
}
func (e *CompileError) Unwrap() error { return e.Err }

func classify(e *CompileError) error {
	return ferrors.WrapError(e, ferrors.CategoryBuild, "release build failed").
		Fatal().
		WithContext("command", e.Command).
		WithContext("dir", e.Dir).
		Build()
}
