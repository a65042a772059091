//go:build !unix

package runlock

// acquire is a no-op where flock(2) is unavailable.
func acquire(string) (func() error, error) {
	return func() error { return nil }, nil
}
