// Package main is the entry point for the solar-roof-map CLI.
package main

import (
	"os"

	"github.com/bbzsolar/solar-roof-map/cmd/solar-roof-map/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
