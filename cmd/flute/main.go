package main

import (
	"os"

	"github.com/flute-go/reflection/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
