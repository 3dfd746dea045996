// Package cmd implements the appdservice trampoline command.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/dispatch"
	"github.com/appdynamics/appdservice/internal/identity"
	"github.com/appdynamics/appdservice/internal/request"
)

// Agent uid set from main.
var agentUID = ""

// SetAgentUID sets the build-time agent uid string.
func SetAgentUID(uid string) {
	agentUID = uid
}

// env holds the process-level collaborators; tests substitute them.
type env struct {
	creds  identity.Credentials
	probe  dispatch.Prober
	exec   dispatch.ExecFunc
	stderr io.Writer
}

func processEnv() env {
	return env{
		creds:  identity.NewOSCredentials(),
		probe:  dispatch.DirProber{},
		exec:   dispatch.Exec,
		stderr: os.Stderr,
	}
}

func newRootCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   request.ProgramName + " <service> <action>",
		Short: "Run a fixed lifecycle action on an AppDynamics service as root",
		Long: "appdservice is installed setuid root. It lets the AppDynamics agent user\n" +
			"query, start, stop, enable or disable one of a fixed set of services\n" +
			"through the system's service tools, and nothing else.",
		// Caller tokens are matched against the registry in run and never
		// parsed as flags.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(e, args)
		},
	}
}

// run is the linear path: validate, check identity, elevate, dispatch.
func run(e env, args []string) error {
	req, err := request.Parse(args)
	if err != nil {
		return err
	}

	gate, err := identity.NewGate(agentUID, e.creds)
	if err != nil {
		return err
	}
	if err := gate.Elevate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return dispatch.New(e.probe, e.exec, logger).Dispatch(req)
}

// Execute runs the trampoline with args (program name excluded) and returns
// the process exit status. It only returns after a successful dispatch when
// the exec is a test double.
func Execute(args []string) int {
	return execute(processEnv(), args)
}

func execute(e env, args []string) int {
	// Cobra only ever sees tokens that already matched the registry, so none
	// of its own argument handling (help, completion) is reachable.
	if _, err := request.Parse(args); err != nil {
		return report(e.stderr, err)
	}

	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(e.stderr)
	root.SetErr(e.stderr)
	if err := root.Execute(); err != nil {
		return report(e.stderr, err)
	}
	return 0
}

type exitCoder interface {
	ExitCode() int
}

func report(w io.Writer, err error) int {
	var argErr *request.ArgumentError
	if errors.As(err, &argErr) {
		request.Report(w, argErr)
		return argErr.ExitCode()
	}

	fmt.Fprintln(w, err)
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
