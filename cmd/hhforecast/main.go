package main

import (
	"os"

	"github.com/hhforecast/household-forecast/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
