// Package main is the entry point for the fade CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/fade/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
