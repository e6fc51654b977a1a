// Package cmd implements the CLI application to render portfolio breakdowns.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/classy"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&breakdownCmd{}, "reports")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var snapshotFile = flag.String("s", "snapshot.jsonl", "Path to the snapshot file (JSONL format)")
var configFile = flag.String("C", "views.toml", "Path to the portfolio views configuration (TOML format)")

var logger = log.Logger{
	Level:  log.InfoLevel,
	Writer: &log.ConsoleWriter{Writer: os.Stderr},
}

// DecodeSnapshotFile decodes the app snapshot file dated on.
func DecodeSnapshotFile(on classy.Date) (*classy.Snapshot, error) {
	f, err := os.Open(*snapshotFile)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %q: %w", *snapshotFile, err)
	}
	defer f.Close()
	return classy.DecodeSnapshot(f, on)
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the terminal renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
