// Package helpers provides test fixtures shared across packages.
package helpers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Upstream is a bare repository plus a seed clone used to publish commits to
// it, both under a test temp dir.
type Upstream struct {
	t        *testing.T
	BarePath string
	SeedPath string
	Seed     *git.Repository
}

// NewUpstream creates the bare repository and a seed whose first commit
// (files) is already pushed on master.
func NewUpstream(t *testing.T, files map[string]string) *Upstream {
	t.Helper()
	root := t.TempDir()
	u := &Upstream{t: t, BarePath: filepath.Join(root, "upstream.git"), SeedPath: filepath.Join(root, "seed")}

	_, err := git.PlainInit(u.BarePath, true)
	require.NoError(t, err)
	u.Seed, err = git.PlainInit(u.SeedPath, false)
	require.NoError(t, err)
	_, err = u.Seed.CreateRemote(&ggitcfg.RemoteConfig{Name: "origin", URLs: []string{u.BarePath}})
	require.NoError(t, err)

	for name, content := range files {
		WriteFile(t, u.SeedPath, name, content)
		Stage(t, u.Seed, name)
	}
	CommitAll(t, u.Seed, "initial")
	u.Push()
	return u
}

// Commit writes one file in the seed, commits and pushes it.
func (u *Upstream) Commit(name, content, msg string) plumbing.Hash {
	u.t.Helper()
	WriteFile(u.t, u.SeedPath, name, content)
	Stage(u.t, u.Seed, name)
	h := CommitAll(u.t, u.Seed, msg)
	u.Push()
	return h
}

// Change runs edit against the seed checkout, stages paths (deleted paths
// included) and pushes one commit. With no paths the commit is empty.
func (u *Upstream) Change(msg string, edit func(root string), paths ...string) plumbing.Hash {
	u.t.Helper()
	if edit != nil {
		edit(u.SeedPath)
	}
	for _, name := range paths {
		Stage(u.t, u.Seed, name)
	}
	h := CommitAll(u.t, u.Seed, msg)
	u.Push()
	return h
}

// Push pushes the seed's master to the bare repository.
func (u *Upstream) Push() {
	u.t.Helper()
	err := u.Seed.Push(&git.PushOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		require.NoError(u.t, err)
	}
}

// Clone makes a tracking clone of master at dir.
func (u *Upstream) Clone(dir string) *git.Repository {
	u.t.Helper()
	repo, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:           u.BarePath,
		ReferenceName: plumbing.NewBranchReferenceName("master"),
		SingleBranch:  true,
	})
	require.NoError(u.t, err)
	return repo
}

// WriteFile writes content to name (slash separated) below root.
func WriteFile(t *testing.T, root, name, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

// Stage adds name to the index.
func Stage(t *testing.T, repo *git.Repository, name string) {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
}

// CommitAll commits the index.
func CommitAll(t *testing.T, repo *git.Repository, msg string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	h, err := wt.Commit(msg, &git.CommitOptions{
		Author:            &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
		AllowEmptyCommits: true,
	})
	require.NoError(t, err)
	return h
}

// Head returns the commit HEAD points at.
func Head(t *testing.T, repo *git.Repository) plumbing.Hash {
	t.Helper()
	ref, err := repo.Head()
	require.NoError(t, err)
	return ref.Hash()
}
