package dispatch

import (
	"github.com/appdynamics/appdservice/internal/registry"
	"github.com/appdynamics/appdservice/internal/request"
)

// ProbeResult is the outcome of probing one candidate.
type ProbeResult struct {
	Candidate
	Executable bool
}

// Plan is a dry run of Dispatch: every candidate probed, nothing executed.
type Plan struct {
	Service  registry.ServiceEntry
	Action   string
	Probes   []ProbeResult
	Selected *Candidate
	Argv     []string
}

// NewPlan probes every candidate for req with probe and records which one
// Dispatch would exec first. Results reflect the identity of the caller, not
// the elevated identity Dispatch runs under.
func NewPlan(req request.Request, probe Prober) Plan {
	svc := registry.Service(req.Service)
	act := registry.Action(req.Action)

	p := Plan{Service: svc, Action: act.Name}
	for _, c := range candidates(act, registry.TrustedDirs()) {
		r := ProbeResult{Candidate: c, Executable: probe.ExecutableAt(c.Dir, c.Handler.Program)}
		p.Probes = append(p.Probes, r)
		if r.Executable && p.Selected == nil {
			sel := c
			p.Selected = &sel
			p.Argv = c.Argv(svc)
		}
	}
	return p
}
