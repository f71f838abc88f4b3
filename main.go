package main

import (
	"os"

	"github.com/abhisek/spellz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
