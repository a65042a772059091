package toolchain

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"git.home.luguber.info/inful/rectpromote/internal/process"
)

// Version is a parsed compiler version line such as
// "rustc 1.81.0-nightly (8337ba918 2024-06-12)".
type Version struct {
	Raw    string
	Semver string // canonical "vMAJOR.MINOR.PATCH[-pre]", empty if unparsable
}

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)(-[0-9A-Za-z.]+)?`)

// ParseVersion extracts the semantic version from compiler version output.
func ParseVersion(output string) Version {
	raw := strings.TrimSpace(output)
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	v := Version{Raw: raw}
	if m := versionPattern.FindString(raw); m != "" && semver.IsValid("v"+m) {
		v.Semver = semver.Canonical("v" + m)
	}
	return v
}

// DetectVersion runs `<probe> --version`. It is best-effort: any failure
// yields the zero Version.
func DetectVersion(ctx context.Context, runner process.Runner, probe string) Version {
	if probe == "" {
		return Version{}
	}
	out, err := runner.Output(ctx, process.Command{Name: probe, Args: []string{"--version"}})
	if err != nil {
		return Version{}
	}
	return ParseVersion(string(out))
}

// Change classifies the difference between two probes.
type Change string

const (
	ChangeUnknown  Change = "unknown"
	ChangeCurrent  Change = "current"
	ChangeUpgraded Change = "upgraded"
	ChangeChanged  Change = "changed" // e.g. a newer nightly with the same semver
)

// Compare reports how the toolchain moved from before to after.
func Compare(before, after Version) Change {
	switch {
	case before.Raw == "" || after.Raw == "":
		return ChangeUnknown
	case before.Raw == after.Raw:
		return ChangeCurrent
	case before.Semver != "" && after.Semver != "" && semver.Compare(after.Semver, before.Semver) > 0:
		return ChangeUpgraded
	default:
		return ChangeChanged
	}
}
