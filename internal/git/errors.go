package git

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// SyncConflictError reports that the working copy cannot be fast-forwarded:
// the histories diverged or local changes collide with incoming ones.
type SyncConflictError struct {
	Branch   string
	Reason   string
	Paths    []string
	Upstream string
}

func (e *SyncConflictError) Error() string {
	msg := fmt.Sprintf("cannot fast-forward %s from %s: %s", e.Branch, e.Upstream, e.Reason)
	if len(e.Paths) > 0 {
		msg += " (" + strings.Join(e.Paths, ", ") + ")"
	}
	return msg
}

// NetworkError reports that the upstream remote could not be reached or
// refused the fetch.
type NetworkError struct {
	Remote string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.Remote, e.URL, e.Err)
}
func (e *NetworkError) Unwrap() error { return e.Err }

func classifyConflict(e *SyncConflictError) error {
	return ferrors.WrapError(e, ferrors.CategoryGit, "working copy cannot be fast-forwarded").
		Fatal().
		WithContext("branch", e.Branch).
		WithContext("reason", e.Reason).
		Build()
}

func classifyNetwork(e *NetworkError) error {
	return ferrors.WrapError(e, ferrors.CategoryNetwork, "upstream remote unreachable").
		Fatal().
		WithContext("remote", e.Remote).
		WithContext("url", e.URL).
		Build()
}

func setupError(message string, err error, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryConfig, message).
		Fatal().
		WithContext("path", path).
		Build()
}
