// Package git fast-forwards the local working copy from its configured
// upstream using go-git.
//
// The synchronizer mirrors `git pull --ff-only`:
//   - the tracked upstream is read from branch configuration (remote/merge)
//   - the remote is fetched; transport failures become NetworkError
//   - diverged history, or local changes that overlap incoming changes,
//     become SyncConflictError
//   - local modifications that do not overlap incoming changes survive
package git
