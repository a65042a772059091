// Package artifact models the compiled shared library a run produces and
// publishes, and the BLAKE3 digests used to verify the published copy.
package artifact

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Artifact is the single compiled library tracked per run.
type Artifact struct {
	Source      string // build-output path, left in place after publishing
	Destination string // published copy, overwritten every run
	Digest      Digest
	Size        int64
}

// Digest is a BLAKE3-256 content hash.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Short returns the first 12 hex characters, for log lines.
func (d Digest) Short() string { return d.String()[:12] }

// IsZero reports whether the digest was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// Sum hashes everything read from r.
func Sum(r io.Reader) (Digest, int64, error) {
	h := blake3.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return Digest{}, n, err
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d, n, nil
}

// SumFile hashes the file at path.
func SumFile(path string) (Digest, int64, error) {
	f, err := os.Open(path) // #nosec G304 -- path is a build output or publish destination
	if err != nil {
		return Digest{}, 0, err
	}
	defer func() { _ = f.Close() }()
	d, n, err := Sum(f)
	if err != nil {
		return Digest{}, n, fmt.Errorf("hash %s: %w", path, err)
	}
	return d, n, nil
}
