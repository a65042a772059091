package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rectpromote/cmd/rectpromote/commands"
	ferrors "git.home.luguber.info/inful/rectpromote/internal/foundation/errors"
	"git.home.luguber.info/inful/rectpromote/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("rectpromote"),
		kong.Description("Update the Rust toolchain, fast-forward the checkout, build the release library and publish it."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err := parser.Run(&commands.Global{}, cli)
	stop()
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
	}
}
