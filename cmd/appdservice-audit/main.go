// Package main is the entry point for the appdservice-audit binary.
package main

import (
	"os"

	"github.com/appdynamics/appdservice/cmd/appdservice-audit/cmd"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
