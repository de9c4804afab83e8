package main

import (
	"os"

	"github.com/novaforge/sitekit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
