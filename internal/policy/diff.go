package policy

import (
	"fmt"
	"slices"
)

// Drift is one difference between a pinned and a compiled document.
type Drift struct {
	// Section is services, actions, trusted_directories or environment.
	Section string
	// Key names the entry within Section; empty for whole-list sections.
	Key string
	// Pinned and Compiled are rendered with %q so list boundaries stay visible.
	Pinned   string
	Compiled string
}

func (d Drift) String() string {
	where := d.Section
	if d.Key != "" {
		where += "[" + d.Key + "]"
	}
	return fmt.Sprintf("%s: pinned %s, compiled %s", where, d.Pinned, d.Compiled)
}

const absent = "<absent>"

// Diff lists the differences between pinned and compiled. Services and
// actions are matched by name, and a change in their order is reported
// separately. Handler chains, trusted directories and the environment are
// compared element by element, since order decides which handler runs.
func Diff(pinned, compiled Document) []Drift {
	var drifts []Drift

	drifts = append(drifts, diffNamed("services", pinned.Services, compiled.Services,
		func(s Service) string { return s.Name },
		func(a, b Service) bool { return a == b },
		func(s Service) string { return fmt.Sprintf("%q", s.ManagerName) })...)

	drifts = append(drifts, diffNamed("actions", pinned.Actions, compiled.Actions,
		func(a Action) string { return a.Name },
		func(a, b Action) bool { return slices.Equal(a.Handlers, b.Handlers) },
		func(a Action) string { return fmt.Sprintf("%q", a.Handlers) })...)

	if !slices.Equal(pinned.TrustedDirectories, compiled.TrustedDirectories) {
		drifts = append(drifts, Drift{
			Section:  "trusted_directories",
			Pinned:   fmt.Sprintf("%q", pinned.TrustedDirectories),
			Compiled: fmt.Sprintf("%q", compiled.TrustedDirectories),
		})
	}
	if !slices.Equal(pinned.Environment, compiled.Environment) {
		drifts = append(drifts, Drift{
			Section:  "environment",
			Pinned:   fmt.Sprintf("%q", pinned.Environment),
			Compiled: fmt.Sprintf("%q", compiled.Environment),
		})
	}
	return drifts
}

func diffNamed[T any](section string, pinned, compiled []T, name func(T) string, equal func(a, b T) bool, render func(T) string) []Drift {
	var drifts []Drift

	for _, n := range duplicates(pinned, name) {
		drifts = append(drifts, Drift{Section: section, Key: n, Pinned: "<duplicate>", Compiled: renderNamed(compiled, n, name, render)})
	}

	pinnedNames := names(pinned, name)
	for _, n := range orderedUnion(pinnedNames, names(compiled, name)) {
		p, pok := find(pinned, n, name)
		c, cok := find(compiled, n, name)
		switch {
		case !pok:
			drifts = append(drifts, Drift{Section: section, Key: n, Pinned: absent, Compiled: render(c)})
		case !cok:
			drifts = append(drifts, Drift{Section: section, Key: n, Pinned: render(p), Compiled: absent})
		case !equal(p, c):
			drifts = append(drifts, Drift{Section: section, Key: n, Pinned: render(p), Compiled: render(c)})
		}
	}

	// Only reported when both sides hold the same names.
	compiledNames := names(compiled, name)
	if !slices.Equal(pinnedNames, compiledNames) && sameSet(pinnedNames, compiledNames) {
		drifts = append(drifts, Drift{
			Section:  section,
			Key:      "order",
			Pinned:   fmt.Sprintf("%q", pinnedNames),
			Compiled: fmt.Sprintf("%q", compiledNames),
		})
	}
	return drifts
}

func names[T any](list []T, name func(T) string) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = name(v)
	}
	return out
}

func find[T any](list []T, n string, name func(T) string) (T, bool) {
	i := slices.IndexFunc(list, func(v T) bool { return name(v) == n })
	if i < 0 {
		var zero T
		return zero, false
	}
	return list[i], true
}

func renderNamed[T any](list []T, n string, name func(T) string, render func(T) string) string {
	v, ok := find(list, n, name)
	if !ok {
		return absent
	}
	return render(v)
}

// duplicates returns names that occur more than once, in first-seen order.
func duplicates[T any](list []T, name func(T) string) []string {
	var dups []string
	seen := make(map[string]int)
	for _, v := range list {
		n := name(v)
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}

// orderedUnion returns every name in a then those only in b, each once.
func orderedUnion(a, b []string) []string {
	var out []string
	for _, n := range slices.Concat(a, b) {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func sameSet(a, b []string) bool {
	return len(a) == len(b) && slices.Equal(slices.Sorted(slices.Values(a)), slices.Sorted(slices.Values(b)))
}
