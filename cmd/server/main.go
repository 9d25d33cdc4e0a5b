package main

import (
	"os"

	"github.com/prudhvinik1/boxfleet/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
