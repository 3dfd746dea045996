// Package main is the entry point for the appdservice setuid trampoline.
package main

import (
	"os"

	"github.com/appdynamics/appdservice/cmd/appdservice/cmd"
)

// agentUID is the numeric uid of the AppDynamics agent user, set at build
// time via -ldflags "-X main.agentUID=<uid>". An unset value fails closed.
var agentUID = ""

func main() {
	cmd.SetAgentUID(agentUID)
	os.Exit(cmd.Execute(os.Args[1:]))
}
