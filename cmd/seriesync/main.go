// Command seriesync checks a series data tree against its specification.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/seriesync/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsRendered(err) {
			fmt.Fprintf(os.Stderr, "seriesync: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
