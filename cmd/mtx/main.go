// Package main is the entry point for the mtx CLI.
package main

import (
	"os"

	"github.com/twistorlab/mtx/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
