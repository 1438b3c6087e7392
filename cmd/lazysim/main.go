// Package main provides the entry point for the lazysim CLI.
package main

import (
	"os"

	"github.com/go-drift/lazyview/cmd/lazysim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
