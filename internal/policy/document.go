// Package policy renders the compiled-in registries as a YAML document and
// compares them against a pinned copy, so an operator can review exactly what
// the trampoline will do and notice when a new build changes it.
package policy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/appdynamics/appdservice/internal/registry"
)

// Document is the reviewable form of the registries.
type Document struct {
	Services           []Service `yaml:"services"`
	Actions            []Action  `yaml:"actions"`
	TrustedDirectories []string  `yaml:"trusted_directories"`
	Environment        []string  `yaml:"environment"`
}

// Service mirrors registry.ServiceEntry.
type Service struct {
	Name        string `yaml:"name"`
	ManagerName string `yaml:"manager_name"`
}

// Action mirrors registry.ActionEntry with its handler chain in order.
type Action struct {
	Name     string    `yaml:"name"`
	Handlers []Handler `yaml:"handlers"`
}

// Handler mirrors registry.Handler.
type Handler struct {
	Program string `yaml:"program"`
	Verb    string `yaml:"verb"`
}

// Current returns the document for the registries compiled into this build.
func Current() Document {
	var doc Document
	for _, s := range registry.Services() {
		doc.Services = append(doc.Services, Service{Name: s.DisplayName, ManagerName: s.ManagerName})
	}
	for _, a := range registry.Actions() {
		act := Action{Name: a.Name}
		for _, h := range a.Handlers() {
			act.Handlers = append(act.Handlers, Handler{Program: h.Program, Verb: h.Verb})
		}
		doc.Actions = append(doc.Actions, act)
	}
	doc.TrustedDirectories = registry.TrustedDirs()
	doc.Environment = registry.Environment()
	return doc
}

// Marshal encodes doc as YAML with two-space indentation.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("policy: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("policy: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes a pinned policy document. Unknown fields and repeated
// service or action names are rejected.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("policy: parse: %w", err)
	}
	if dups := duplicates(doc.Services, func(s Service) string { return s.Name }); len(dups) > 0 {
		return Document{}, fmt.Errorf("policy: parse: duplicate service %q", dups[0])
	}
	if dups := duplicates(doc.Actions, func(a Action) string { return a.Name }); len(dups) > 0 {
		return Document{}, fmt.Errorf("policy: parse: duplicate action %q", dups[0])
	}
	return doc, nil
}

// ParseFile reads and decodes the pinned policy at path.
func ParseFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("policy: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%w (%s)", err, path)
	}
	return doc, nil
}
