// Command brutalist runs mutation campaigns and related test-quality checks.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/brutalist/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
