package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/rectpromote/internal/config"
	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
	"git.home.luguber.info/inful/rectpromote/internal/logfields"
)

// SyncResult describes what a synchronization did.
type SyncResult struct {
	Branch    string
	Upstream  string
	From      string
	To        string
	Updated   bool
	Preserved []string // local modifications carried across the fast-forward
}

// Synchronizer fast-forwards a working copy from its upstream.
type Synchronizer interface {
	Sync(ctx context.Context) (SyncResult, error)
}

// Client synchronizes the working copy at dir.
type Client struct {
	dir string
	cfg config.SyncConfig
}

// NewClient creates a synchronizer for the working copy at dir.
func NewClient(dir string, cfg config.SyncConfig) *Client {
	return &Client{dir: dir, cfg: cfg}
}

func (c *Client) Sync(ctx context.Context) (SyncResult, error) {
	repo, err := git.PlainOpenWithOptions(c.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return SyncResult{}, setupError("open working copy", err, c.dir)
	}
	up, err := c.resolveUpstream(repo)
	if err != nil {
		return SyncResult{}, setupError("resolve upstream", err, c.dir)
	}
	res := SyncResult{Branch: up.Branch, Upstream: up.String()}
	slog.Info("Synchronizing working copy", logfields.Branch(up.Branch), slog.String("upstream", up.String()), logfields.Path(c.dir))

	if err := c.fetch(ctx, repo, up); err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, classifyNetwork(&NetworkError{Remote: up.Remote, URL: up.URL, Err: err})
	}

	head, err := repo.Head()
	if err != nil {
		return res, setupError("resolve HEAD", err, c.dir)
	}
	remoteRef, err := repo.Reference(up.remoteRef(), true)
	if err != nil {
		return res, setupError("upstream branch not found after fetch", err, c.dir)
	}
	from, to := head.Hash(), remoteRef.Hash()
	res.From, res.To = from.String(), from.String()

	if from == to {
		slog.Info("Working copy already up-to-date", logfields.Branch(up.Branch), logfields.Commit(from.String()))
		return res, nil
	}
	if ahead, _ := isAncestor(repo, to, from); ahead {
		slog.Warn("Local branch is ahead of upstream; nothing to fast-forward", logfields.Branch(up.Branch), logfields.Commit(from.String()))
		return res, nil
	}
	ff, err := isAncestor(repo, from, to)
	if err != nil {
		return res, ferrors.WrapError(err, ferrors.CategoryGit, "ancestry check failed").Build()
	}
	if !ff {
		return res, classifyConflict(&SyncConflictError{Branch: up.Branch, Upstream: up.String(), Reason: "local branch diverged from upstream"})
	}

	preserved, err := c.fastForward(repo, up, from, to)
	if err != nil {
		return res, err
	}
	res.To = to.String()
	res.Updated = true
	res.Preserved = preserved
	slog.Info("Fast-forwarded working copy", logfields.Branch(up.Branch),
		slog.String("from", res.From[:8]), slog.String("to", res.To[:8]),
		slog.Int("preserved_local_changes", len(preserved)))
	return res, nil
}

// fetch updates the remote-tracking ref for the upstream branch only.
func (c *Client) fetch(ctx context.Context, repo *git.Repository, up upstream) error {
	spec := ggitcfg.RefSpec(fmt.Sprintf("+refs/heads/%s:%s", up.Merge, up.remoteRef()))
	opts := &git.FetchOptions{
		RemoteName: up.Remote,
		RefSpecs:   []ggitcfg.RefSpec{spec},
		Tags:       git.NoTags,
		Auth:       c.authFor(up.URL),
	}
	if err := repo.FetchContext(ctx, opts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return err
	}
	return nil
}

// fastForward moves the branch to `to`, refusing when local changes overlap
// the incoming ones and carrying non-overlapping local changes across.
func (c *Client) fastForward(repo *git.Repository, up upstream, from, to plumbing.Hash) ([]string, error) {
	incoming, err := changedPaths(repo, from, to)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "diff incoming changes").Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "open worktree").Build()
	}
	status, err := wt.Status()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryGit, "worktree status").Build()
	}

	var local, conflicts []string
	for path, fs := range status {
		touched := overlaps(path, incoming)
		switch {
		case fs.Worktree == git.Untracked:
			if touched {
				conflicts = append(conflicts, path)
			}
		case fs.Worktree == git.Unmodified && fs.Staging == git.Unmodified:
		case touched:
			conflicts = append(conflicts, path)
		default:
			local = append(local, path)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, classifyConflict(&SyncConflictError{
			Branch:   up.Branch,
			Upstream: up.String(),
			Reason:   "local changes would be overwritten",
			Paths:    conflicts,
		})
	}
	sort.Strings(local)

	// An empty Files list would reset the whole tree, so commits that touch
	// no paths only move the branch.
	if len(incoming) == 0 {
		if err := wt.Reset(&git.ResetOptions{Commit: to, Mode: git.SoftReset}); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryGit, "fast-forward reset").Build()
		}
		return local, nil
	}
	// Limited to the incoming paths, a hard reset leaves untracked build
	// output and the index entries of other paths alone.
	if err := wt.Reset(&git.ResetOptions{Commit: to, Mode: git.HardReset, Files: incoming}); err != nil {
		if rerr := wt.Reset(&git.ResetOptions{Commit: from, Mode: git.HardReset, Files: incoming}); rerr != nil {
			slog.Error("Rolling back partial fast-forward failed", logfields.Branch(up.Branch), logfields.Commit(from.String()), logfields.Error(rerr))
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write incoming changes").
			WithContext("path", c.dir).
			Build()
	}
	return local, nil
}

// changedPaths lists every path touched between from and to, sorted.
func changedPaths(repo *git.Repository, from, to plumbing.Hash) ([]string, error) {
	fromTree, err := commitTree(repo, from)
	if err != nil {
		return nil, err
	}
	toTree, err := commitTree(repo, to)
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(changes))
	for _, ch := range changes {
		for _, name := range []string{ch.From.Name, ch.To.Name} {
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	paths := make([]string, 0, len(seen))
	for name := range seen {
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths, nil
}

// overlaps reports whether path is one of paths or lies above or below one
// of them, as when a directory is replaced by a file.
func overlaps(path string, paths []string) bool {
	for _, p := range paths {
		if path == p || strings.HasPrefix(path, p+"/") || strings.HasPrefix(p, path+"/") {
			return true
		}
	}
	return false
}

func commitTree(repo *git.Repository, h plumbing.Hash) (*object.Tree, error) {
	commit, err := repo.CommitObject(h)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}
