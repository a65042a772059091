// Package runlock keeps two pipeline runs from racing on the same working
// copy and destination file.
package runlock

import (
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
)

// ErrLocked is returned when another run holds the lock.
var ErrLocked = errors.New("another run is in progress")

// Lock is a held run lock.
type Lock struct {
	path    string
	release func() error
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Release drops the lock. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.release == nil {
		return nil
	}
	err := l.release()
	l.release = nil
	return err
}

// Acquire takes the lock for path without blocking. The lock file itself is
// left on disk; only the lock held on it matters.
func Acquire(path string) (*Lock, error) {
	release, err := acquire(path)
	if errors.Is(err, ErrLocked) {
		return nil, ferrors.RuntimeError("pipeline already running").
			WithCause(err).
			WithContext("lock", path).
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(fmt.Errorf("lock %s: %w", path, err), ferrors.CategoryFileSystem, "cannot create run lock").
			WithContext("lock", path).
			Build()
	}
	return &Lock{path: path, release: release}, nil
}

// PathFor returns the lock file guarding destination.
func PathFor(destination string) string { return destination + ".lock" }
