package main

import (
	"fmt"
	"os"

	"github.com/stigoleg/burst-click/internal/cli"
	"github.com/stigoleg/burst-click/internal/config"
)

const appVersion = "0.4.0"

func main() {
	if err := cli.NewRootCommand(appVersion).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, config.FormatError(err))
		os.Exit(1)
	}
}
