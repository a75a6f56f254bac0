// Command folio publishes PDF flipbooks and reads them in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/cli"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
