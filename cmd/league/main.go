package main

import (
	"os"

	"github.com/reellords/studio-league/backend/cmd/league/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
