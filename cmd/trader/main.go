package main

import (
	"os"

	"github.com/stonjarli/backend/cmd/trader/commands"
)

// main is the entry point for the trader CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
