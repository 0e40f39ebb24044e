// Command clockgen validates board clock descriptions and generates their
// Go source.
package main

import (
	"fmt"
	"os"

	"clocktree-go/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clockgen:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
