package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/hypersite/hypersite/cmd/hypersite/commands"
	"github.com/hypersite/hypersite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("hypersite"),
		kong.Description("Compile a tree of markup documents into a hypermedia-ready site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Generator()},
	)

	if err := ctx.Run(&commands.Global{}, cli); err != nil {
		fmt.Fprintf(os.Stderr, "hypersite: %v\n", err)
		os.Exit(1)
	}
}
