package policy

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestCurrent_MirrorsRegistry(t *testing.T) {
	doc := Current()

	var names []string
	for _, s := range doc.Services {
		names = append(names, s.Name)
		if s.ManagerName != s.Name {
			t.Errorf("service %q manager name = %q", s.Name, s.ManagerName)
		}
	}
	wantSvcs := []string{"appdcontroller", "appdcontroller-db", "appdynamics-machine-agent"}
	if !slices.Equal(names, wantSvcs) {
		t.Errorf("services = %q, want %q", names, wantSvcs)
	}

	if len(doc.Actions) != 5 {
		t.Fatalf("len(Actions) = %d, want 5", len(doc.Actions))
	}
	enable := doc.Actions[3]
	wantEnable := []Handler{{"chkconfig", "on"}, {"update-rc.d", "enable"}}
	if enable.Name != "enable" || !slices.Equal(enable.Handlers, wantEnable) {
		t.Errorf("actions[3] = %+v, want enable %+v", enable, wantEnable)
	}

	if want := []string{"/sbin", "/usr/sbin"}; !slices.Equal(doc.TrustedDirectories, want) {
		t.Errorf("TrustedDirectories = %q, want %q", doc.TrustedDirectories, want)
	}
	if want := []string{"PATH=/sbin:/usr/sbin:/bin:/usr/bin"}; !slices.Equal(doc.Environment, want) {
		t.Errorf("Environment = %q, want %q", doc.Environment, want)
	}
}

func TestMarshal_ParseRoundTrip(t *testing.T) {
	data, err := Marshal(Current())
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	for _, want := range []string{"services:", "trusted_directories:", "- name: appdcontroller\n", "program: update-rc.d"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, data)
		}
	}

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if drifts := Diff(doc, Current()); len(drifts) != 0 {
		t.Errorf("Diff after round trip = %v, want none", drifts)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("services:\n  - name: appdcontroller\n    manger_name: appdcontroller\n"))
	if err == nil {
		t.Fatal("Parse() = nil, want error for misspelt key")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("{{invalid yaml")); err == nil {
		t.Fatal("Parse() = nil, want error")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appdservice-policy.yaml")
	data, err := Marshal(Current())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() = %v", err)
	}
	if len(doc.Services) != 3 {
		t.Errorf("len(Services) = %d, want 3", len(doc.Services))
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("/nonexistent/path/policy.yaml")
	if err == nil {
		t.Fatal("ParseFile() = nil, want error")
	}
	if !strings.Contains(err.Error(), "/nonexistent/path/policy.yaml") {
		t.Errorf("error = %q, want path", err)
	}
}

func TestParse_RejectsDuplicateNames(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "service",
			yaml: "services:\n  - name: appdcontroller\n    manager_name: appdcontroller\n" +
				"  - name: appdcontroller\n    manager_name: appdcontroller\n",
			wantErr: `duplicate service "appdcontroller"`,
		},
		{
			name: "action",
			yaml: "actions:\n  - name: start\n    handlers:\n      - program: service\n        verb: start\n" +
				"  - name: start\n    handlers:\n      - program: service\n        verb: start\n",
			wantErr: `duplicate action "start"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
