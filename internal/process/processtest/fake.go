// Package processtest provides a scriptable process.Runner for tests.
package processtest

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/rectpromote/internal/process"
)

// Response is the scripted result for one command line.
type Response struct {
	Output []byte
	Err    error
	// Hook runs before the response is returned, e.g. to create build output.
	Hook func(cmd process.Command)
}

// FakeRunner records every command and replies from Responses keyed by
// Command.String(). Unknown commands succeed with no output.
type FakeRunner struct {
	mu        sync.Mutex
	Responses map[string]Response
	Calls     []process.Command
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Responses: map[string]Response{}}
}

// On registers the response for a command line.
func (f *FakeRunner) On(cmdline string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[cmdline] = resp
	return f
}

func (f *FakeRunner) Run(ctx context.Context, cmd process.Command) error {
	_, err := f.Output(ctx, cmd)
	return err
}

func (f *FakeRunner) Output(ctx context.Context, cmd process.Command) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	resp, ok := f.Responses[cmd.String()]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	if resp.Hook != nil {
		resp.Hook(cmd)
	}
	return resp.Output, resp.Err
}

// CommandLines returns the recorded calls as strings, in order.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.String()
	}
	return out
}
