// Command lily grows L-system plants into triangle meshes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/roach88/lily/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
