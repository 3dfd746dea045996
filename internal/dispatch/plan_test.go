package dispatch

import (
	"slices"
	"testing"
)

func TestNewPlan_SelectsFirstExecutable(t *testing.T) {
	probe := &mockProber{executable: map[string]bool{
		"/usr/sbin/update-rc.d": true,
		"/sbin/update-rc.d":     true,
	}}

	p := NewPlan(mustParse(t, "appdcontroller", "enable"), probe)

	if p.Service.DisplayName != "appdcontroller" || p.Action != "enable" {
		t.Errorf("plan header = %q/%q, want appdcontroller/enable", p.Service.DisplayName, p.Action)
	}
	if len(p.Probes) != 4 {
		t.Fatalf("len(Probes) = %d, want 4", len(p.Probes))
	}
	if p.Selected == nil {
		t.Fatal("Selected = nil, want /sbin/update-rc.d")
	}
	if got := p.Selected.Path(); got != "/sbin/update-rc.d" {
		t.Errorf("Selected.Path() = %q, want /sbin/update-rc.d", got)
	}
	if want := []string{"update-rc.d", "appdcontroller", "enable"}; !slices.Equal(p.Argv, want) {
		t.Errorf("Argv = %q, want %q", p.Argv, want)
	}

	var executable int
	for _, r := range p.Probes {
		if r.Executable {
			executable++
		}
	}
	if executable != 2 {
		t.Errorf("executable probes = %d, want 2", executable)
	}
}

func TestNewPlan_NothingExecutable(t *testing.T) {
	p := NewPlan(mustParse(t, "appdcontroller-db", "status"), &mockProber{})
	if p.Selected != nil {
		t.Errorf("Selected = %v, want nil", p.Selected)
	}
	if p.Argv != nil {
		t.Errorf("Argv = %q, want nil", p.Argv)
	}
	if len(p.Probes) != 2 {
		t.Errorf("len(Probes) = %d, want 2", len(p.Probes))
	}
}
