package git

import (
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	helpers "git.home.luguber.info/inful/rectpromote/internal/testutil/testutils"
)

// fixture is an upstream with a tracking working copy under test.
type fixture struct {
	up    *helpers.Upstream
	bare  string
	local *git.Repository
	path  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// newFixtureWith seeds the upstream with the default crate plus extra files.
func newFixtureWith(t *testing.T, extra map[string]string) *fixture {
	t.Helper()
	files := map[string]string{
		"src/lib.rs": "// promotion\nfn main() {}\n",
		"Cargo.toml": "[package]\nname = \"rectangular_promotion\"\n",
	}
	maps.Copy(files, extra)
	up := helpers.NewUpstream(t, files)
	path := filepath.Join(t.TempDir(), "checkout")
	return &fixture{up: up, bare: up.BarePath, local: up.Clone(path), path: path}
}

func (f *fixture) upstreamCommit(_ *testing.T, name, content, msg string) plumbing.Hash {
	return f.up.Commit(name, content, msg)
}

func commitFile(t *testing.T, repo *git.Repository, root, name, content, msg string) plumbing.Hash {
	t.Helper()
	helpers.WriteFile(t, root, name, content)
	helpers.Stage(t, repo, name)
	return helpers.CommitAll(t, repo, msg)
}

func headHash(t *testing.T, repo *git.Repository) plumbing.Hash {
	t.Helper()
	return helpers.Head(t, repo)
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func assertClean(t *testing.T, repo *git.Repository) {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	require.True(t, status.IsClean(), "worktree not clean:\n%s", status)
}
