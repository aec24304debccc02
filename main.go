package main

import (
	"os"

	"tictactoe/commands"
)

func main() {
	// Errors are printed by the printer package before they reach here
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
