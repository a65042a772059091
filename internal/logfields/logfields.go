package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStep       = "step"
	KeyStepResult = "step_result"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyExitCode   = "exit_code"
	KeyBranch     = "branch"
	KeyCommit     = "commit"
	KeyDigest     = "digest"
	KeyVersion    = "version"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Step(name string) slog.Attr       { return slog.String(KeyStep, name) }
func StepResult(r string) slog.Attr    { return slog.String(KeyStepResult, r) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Command(c string) slog.Attr       { return slog.String(KeyCommand, c) }
func ExitCode(code int) slog.Attr      { return slog.Int(KeyExitCode, code) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func Digest(d string) slog.Attr        { return slog.String(KeyDigest, d) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

// Commit logs a shortened commit hash.
func Commit(hash string) slog.Attr {
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return slog.String(KeyCommit, hash)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
