package main

import (
	"fmt"
	"os"

	"github.com/roach88/shapepath/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own formatted errors; flag and argument
		// errors from cobra still need a line on stderr.
		if _, ok := err.(*cli.ExitError); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
