// Command pvs values a book of positions against their latest quotes.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/valuation/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion support. Complete exits on its own when the binary is
	// invoked by the shell completion machinery.
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() {
	files := predict.Files("*.json")
	globals := map[string]complete.Predictor{
		"positions-file": files,
		"quotes-file":    files,
		"config-file":    predict.Files("*.yaml"),
	}
	pvs := &complete.Command{
		Flags: globals,
		Sub: map[string]*complete.Command{
			"payload": {Flags: map[string]complete.Predictor{
				"at":      predict.Nothing,
				"compact": predict.Nothing,
			}},
			"snapshot": {},
			"topic": {Args: predict.Set{
				"readme", "marks", "sessions", "pnl", "staleness", "timestamps", "*",
			}},
			"assist": {},
		},
	}
	pvs.Complete("pvs")
}
