// Package publish copies the compiled artifact to its fixed destination.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/rectpromote/internal/artifact"
	"git.home.luguber.info/inful/rectpromote/internal/logfields"
)

// ErrSourceMissing is returned when the build reported success but left no
// artifact behind.
var ErrSourceMissing = errors.New("build output missing")

// ErrDigestMismatch is returned when the published copy does not hash to the
// same value as the source.
var ErrDigestMismatch = errors.New("published copy differs from build output")

// Publisher copies a build output to the publish destination.
type Publisher interface {
	Publish(ctx context.Context, src string) (artifact.Artifact, error)
}

// FilePublisher overwrites a single destination file.
type FilePublisher struct {
	destination string
}

// NewFilePublisher returns a publisher writing to destination.
func NewFilePublisher(destination string) *FilePublisher {
	return &FilePublisher{destination: destination}
}

func (p *FilePublisher) Publish(ctx context.Context, src string) (artifact.Artifact, error) {
	art := artifact.Artifact{Source: src, Destination: p.destination}
	fail := func(op string, err error) (artifact.Artifact, error) {
		return art, classify(&PublishIOError{Op: op, Source: src, Destination: p.destination, Err: err})
	}

	info, err := os.Stat(src)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fail("stat source", ErrSourceMissing)
	case err != nil:
		return fail("stat source", err)
	case !info.Mode().IsRegular():
		return fail("stat source", fmt.Errorf("%w: not a regular file", ErrSourceMissing))
	}
	if err := ctx.Err(); err != nil {
		return art, err
	}

	sum, size, err := copyFile(src, p.destination, info.Mode().Perm())
	if err != nil {
		return fail("copy", err)
	}
	published, _, err := artifact.SumFile(p.destination)
	if err != nil {
		return fail("verify", err)
	}
	if published != sum {
		return fail("verify", ErrDigestMismatch)
	}

	art.Digest, art.Size = sum, size
	slog.Info("Published artifact",
		logfields.Path(p.destination),
		logfields.Digest(sum.Short()),
		slog.Int64("bytes", size))
	return art, nil
}

// copyFile writes src into a temp file next to dst, then renames it over dst
// so the destination is never observed half-written. It returns the digest
// of the bytes read from src.
func copyFile(src, dst string, perm os.FileMode) (artifact.Digest, int64, error) {
	in, err := os.Open(src) // #nosec G304 -- src is the build output path
	if err != nil {
		return artifact.Digest{}, 0, err
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return artifact.Digest{}, 0, err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	sum, n, err := artifact.Sum(io.TeeReader(in, tmp))
	if err != nil {
		_ = tmp.Close()
		return artifact.Digest{}, n, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return artifact.Digest{}, n, err
	}
	if err := tmp.Close(); err != nil {
		return artifact.Digest{}, n, err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return artifact.Digest{}, n, err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return artifact.Digest{}, n, err
	}
	committed = true
	return sum, n, nil
}
