package main

import (
	"os"

	"github.com/simonhull/firebird-suite/nest/internal/commands"
	"github.com/simonhull/firebird-suite/nest/pkg/output"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := commands.RootCmd(version).Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
