// Package request turns the caller's command-line tokens into registry
// indices. Tokens are only ever compared against registry entries; they are
// never stored, copied into other values, or passed on.
package request

import (
	"fmt"
	"io"
	"strings"

	"github.com/appdynamics/appdservice/internal/registry"
)

// ExitUsage is the process exit status for an ArgumentError.
const ExitUsage = 1

// ProgramName is the name printed in usage text.
const ProgramName = "appdservice"

// Request is a validated invocation.
type Request struct {
	Service registry.ServiceIndex
	Action  registry.ActionIndex
}

// ArgumentError reports a malformed or unknown invocation.
type ArgumentError struct {
	// Field is "service" or "action" for an unknown name, empty for a bad
	// argument count.
	Field string
	Value string
	Count int
}

func (e *ArgumentError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("expected 2 arguments, got %d", e.Count)
	}
	return fmt.Sprintf("unknown %s %q", e.Field, e.Value)
}

// ExitCode returns ExitUsage.
func (e *ArgumentError) ExitCode() int { return ExitUsage }

// Parse validates args, which must not include the program name.
func Parse(args []string) (Request, error) {
	if len(args) != 2 {
		return Request{}, &ArgumentError{Count: len(args)}
	}

	svc, ok := registry.LookupService(args[0])
	if !ok {
		return Request{}, &ArgumentError{Field: "service", Value: args[0], Count: 2}
	}
	act, ok := registry.LookupAction(args[1])
	if !ok {
		return Request{}, &ArgumentError{Field: "action", Value: args[1], Count: 2}
	}
	return Request{Service: svc, Action: act}, nil
}

// WriteUsage prints the invocation synopsis followed by every service and
// the actions accepted for it.
func WriteUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s <service> <action>\n", ProgramName)
	actions := strings.Join(registry.ActionNames(), ",")
	for _, s := range registry.Services() {
		fmt.Fprintf(w, "\t%s {%s}\n", s.DisplayName, actions)
	}
}

// Report writes the diagnostic for err followed by usage. Count errors get
// usage only.
func Report(w io.Writer, err *ArgumentError) {
	if err.Field != "" {
		fmt.Fprintln(w, err.Error())
	}
	WriteUsage(w)
}
