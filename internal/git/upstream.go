package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const defaultRemote = "origin"

// upstream identifies the remote branch the current branch tracks.
type upstream struct {
	Branch string // local branch short name
	Remote string
	Merge  string // remote branch short name
	URL    string
}

func (u upstream) String() string { return u.Remote + "/" + u.Merge }

func (u upstream) remoteRef() plumbing.ReferenceName {
	return plumbing.NewRemoteReferenceName(u.Remote, u.Merge)
}

// resolveUpstream follows the precedence: explicit configuration, then the
// branch's tracking configuration, then origin and the same branch name.
func (c *Client) resolveUpstream(repo *git.Repository) (upstream, error) {
	head, err := repo.Head()
	if err != nil {
		return upstream{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return upstream{}, errors.New("working copy is not on a branch (detached HEAD)")
	}
	u := upstream{Branch: head.Name().Short()}

	if cfg, err := repo.Config(); err == nil {
		if b, ok := cfg.Branches[u.Branch]; ok {
			u.Remote = b.Remote
			if b.Merge != "" {
				u.Merge = b.Merge.Short()
			}
		}
	}
	if c.cfg.Remote != "" {
		u.Remote = c.cfg.Remote
	}
	if c.cfg.Branch != "" {
		u.Merge = c.cfg.Branch
	}
	if u.Remote == "" {
		u.Remote = defaultRemote
	}
	if u.Merge == "" {
		u.Merge = u.Branch
	}

	remote, err := repo.Remote(u.Remote)
	if err != nil {
		return upstream{}, fmt.Errorf("remote %q: %w", u.Remote, err)
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		u.URL = urls[0]
	}
	return u, nil
}
