package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type payloadCmd struct {
	at      string
	compact bool
}

func (*payloadCmd) Name() string { return "payload" }
func (*payloadCmd) Synopsis() string {
	return "value every position and print the equities payload as JSON"
}
func (*payloadCmd) Usage() string {
	return `pvs payload [-at <time>] [-compact]

  Reads the positions and quote files, values every position against its best
  available mark, and prints one JSON row per position with day and total PnL,
  percentages and staleness. Rows keep the order of the positions file.

Usage Examples:
# Value the book right now.
$ pvs payload

# Value the book as of a fixed instant (staleness is computed against it).
$ pvs payload -at 2026-08-26T15:30:00Z
`
}

func (p *payloadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.at, "at", "", "Valuation time (RFC3339). Defaults to now.")
	f.BoolVar(&p.compact, "compact", false, "Print compact JSON instead of indented.")
}

func (p *payloadCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseAt(p.at)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	book, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	rows := book.EquitiesPayload(now)

	var out []byte
	if p.compact {
		out, err = json.Marshal(rows)
	} else {
		out, err = json.MarshalIndent(rows, "", "  ")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding payload: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
