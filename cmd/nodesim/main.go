package main

import (
	"os"

	"github.com/rustyeddy/nodesim/cmd/nodesim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
