package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/rectpromote/internal/artifact"
	"git.home.luguber.info/inful/rectpromote/internal/git"
	"git.home.luguber.info/inful/rectpromote/internal/toolchain"
)

// calls records the order in which fakes were invoked.
type calls []string

func (c *calls) add(s string) { *c = append(*c, s) }

type fakeUpdater struct {
	log *calls
	err error
}

func (f *fakeUpdater) Update(context.Context) (toolchain.UpdateResult, error) {
	f.log.add("update")
	return toolchain.UpdateResult{Change: toolchain.ChangeCurrent}, f.err
}

type fakeSync struct {
	log *calls
	err error
}

func (f *fakeSync) Sync(context.Context) (git.SyncResult, error) {
	f.log.add("sync")
	return git.SyncResult{Branch: "master"}, f.err
}

// fakeCompiler writes content to out unless err is set or skipWrite
// simulates a build that reports success but produces nothing.
type fakeCompiler struct {
	log       *calls
	out       string
	content   string
	skipWrite bool
	err       error
}

func (f *fakeCompiler) Compile(context.Context) (string, error) {
	f.log.add("compile")
	if f.err != nil {
		return "", f.err
	}
	if !f.skipWrite {
		if err := os.MkdirAll(filepath.Dir(f.out), 0o750); err != nil {
			return "", err
		}
		if err := os.WriteFile(f.out, []byte(f.content), 0o600); err != nil {
			return "", err
		}
	}
	return f.out, nil
}

type recordingPublisher struct {
	log   *calls
	inner interface {
		Publish(context.Context, string) (artifact.Artifact, error)
	}
}

func (p *recordingPublisher) Publish(ctx context.Context, src string) (artifact.Artifact, error) {
	p.log.add("publish")
	return p.inner.Publish(ctx, src)
}
