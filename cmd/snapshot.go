package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

type snapshotCmd struct{}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "print the snapshot-as-of time of the loaded book" }
func (*snapshotCmd) Usage() string {
	return `pvs snapshot

  Prints the instant the book's quotes were taken at, which is the most recent
  quote update time. Prints nothing and exits non-zero when no quote carries a
  usable timestamp.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := LoadBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	at, ok := book.SnapshotUpdatedAt()
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: no quote carries a usable timestamp")
		return subcommands.ExitFailure
	}
	fmt.Println(at.Format(time.RFC3339Nano))
	return subcommands.ExitSuccess
}
