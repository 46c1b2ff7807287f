package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/perfreport/cmd/perfreport/commands"
	foundationerrors "git.home.luguber.info/inful/perfreport/internal/foundation/errors"
	"git.home.luguber.info/inful/perfreport/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("perfreport"),
		kong.Description("Assemble benchmark results into a single HTML performance report."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default(), Stdout: os.Stdout}
	if err := parser.Run(global, cli); err != nil {
		foundationerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
