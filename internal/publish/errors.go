package publish

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// PublishIOError reports that the artifact could not be published: the build
// output is missing or the destination could not be written or verified.
type PublishIOError struct {
	Op          string
	Source      string
	Destination string
	Err         error
}

func (e *PublishIOError) Error() string {
	return fmt.Sprintf("publish %s -> %s: %s: %v", e.Source, e.Destination, e.Op, e.Err)
}
func (e *PublishIOError) Unwrap() error { return e.Err }

func classify(e *PublishIOError) error {
	return ferrors.WrapError(e, ferrors.CategoryFileSystem, "artifact publish failed").
		Fatal().
		WithContext("op", e.Op).
		WithContext("source", e.Source).
		WithContext("destination", e.Destination).
		Build()
}
