// Command connectome detects consensus modules in brain connectivity matrices
// and aggregates connectivity within and between them.
package main

import (
	"os"

	"github.com/katalvlaran/connectome/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
