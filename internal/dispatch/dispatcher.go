// Package dispatch resolves an action's handler chain against the trusted
// directories and replaces the process image with the first usable handler.
package dispatch

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/appdynamics/appdservice/internal/registry"
	"github.com/appdynamics/appdservice/internal/request"
)

// ExitExhausted is the process exit status when no handler could be run.
const ExitExhausted = 4

// Prober reports whether program can be executed from dir.
type Prober interface {
	ExecutableAt(dir, program string) bool
}

// ExecFunc replaces the process image. It has the signature of unix.Exec and
// only returns on failure; test doubles return nil to stand in for success.
type ExecFunc func(path string, argv []string, env []string) error

// ExhaustedError reports that every (handler, directory) pair was unusable.
type ExhaustedError struct {
	Service string
	Action  string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no valid handlers found for service %s action %s", e.Service, e.Action)
}

// ExitCode returns ExitExhausted.
func (e *ExhaustedError) ExitCode() int { return ExitExhausted }

// Candidate is one (directory, handler) pair in resolution order.
type Candidate struct {
	Dir     string
	Handler registry.Handler
}

// Path is the absolute path of the handler program in Dir.
func (c Candidate) Path() string {
	return c.Dir + "/" + c.Handler.Program
}

// Argv builds the argument vector for svc. Every element is a fresh copy.
func (c Candidate) Argv(svc registry.ServiceEntry) []string {
	return []string{
		strings.Clone(c.Handler.Program),
		strings.Clone(svc.ManagerName),
		strings.Clone(c.Handler.Verb),
	}
}

// candidates lists every handler in every directory: the whole first handler
// across all directories before the next handler.
func candidates(act registry.ActionEntry, dirs []string) []Candidate {
	hs := act.Handlers()
	out := make([]Candidate, 0, len(hs)*len(dirs))
	for _, h := range hs {
		for _, d := range dirs {
			out = append(out, Candidate{Dir: d, Handler: h})
		}
	}
	return out
}

// Dispatcher runs the first resolvable handler for a request.
type Dispatcher struct {
	dirs   []string
	env    []string
	probe  Prober
	exec   ExecFunc
	logger *slog.Logger
}

// New creates a Dispatcher over the registry's trusted directories.
func New(probe Prober, exec ExecFunc, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		dirs:   registry.TrustedDirs(),
		env:    registry.Environment(),
		probe:  probe,
		exec:   exec,
		logger: logger.With("component", "dispatch"),
	}
}

// Dispatch probes candidates in order and execs the first executable one.
// An exec that fails moves on to the next candidate. On success with a real
// exec this never returns; it returns *ExhaustedError once every candidate
// has been tried.
func (d *Dispatcher) Dispatch(req request.Request) error {
	svc := registry.Service(req.Service)
	act := registry.Action(req.Action)

	for _, c := range candidates(act, d.dirs) {
		if !d.probe.ExecutableAt(c.Dir, c.Handler.Program) {
			d.logger.Debug("handler not executable", "dir", c.Dir, "program", c.Handler.Program)
			continue
		}

		path := c.Path()
		err := d.exec(path, c.Argv(svc), slices.Clone(d.env))
		if err == nil {
			return nil
		}
		d.logger.Warn("handler exec failed", "path", path, "error", err)
	}

	return &ExhaustedError{Service: svc.DisplayName, Action: act.Name}
}
