package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the compiled-in tables for well-formedness. It runs from
// the package init, so a malformed build never reaches argument handling.
func Validate() error {
	return validate(services[:], actions[:], trustedDirs[:], execEnv[:])
}

func validate(svcs []ServiceEntry, acts []ActionEntry, dirs, env []string) error {
	if len(svcs) == 0 {
		return errors.New("registry: no services")
	}
	if len(acts) == 0 {
		return errors.New("registry: no actions")
	}
	if len(dirs) == 0 {
		return errors.New("registry: no trusted directories")
	}

	seen := make(map[string]bool, len(svcs))
	for i, s := range svcs {
		if s.DisplayName == "" || s.ManagerName == "" {
			return fmt.Errorf("registry: service %d: empty name", i)
		}
		if seen[s.DisplayName] {
			return fmt.Errorf("registry: service %q: duplicate", s.DisplayName)
		}
		seen[s.DisplayName] = true
	}

	seen = make(map[string]bool, len(acts))
	for i, a := range acts {
		if a.Name == "" {
			return fmt.Errorf("registry: action %d: empty name", i)
		}
		if seen[a.Name] {
			return fmt.Errorf("registry: action %q: duplicate", a.Name)
		}
		seen[a.Name] = true

		if a.n < 1 {
			return fmt.Errorf("registry: action %q: no handlers", a.Name)
		}
		if a.n > MaxHandlers {
			return fmt.Errorf("registry: action %q: %d handlers exceeds capacity %d", a.Name, a.n, MaxHandlers)
		}
		for j, h := range a.handlers[:a.n] {
			if err := validateHandler(h); err != nil {
				return fmt.Errorf("registry: action %q: handler %d: %w", a.Name, j, err)
			}
		}
		for j := a.n; j < MaxHandlers; j++ {
			if a.handlers[j] != (Handler{}) {
				return fmt.Errorf("registry: action %q: handler %d set beyond chain length", a.Name, j)
			}
		}
	}

	seen = make(map[string]bool, len(dirs))
	for _, d := range dirs {
		if !filepath.IsAbs(d) || filepath.Clean(d) != d || d == "/" {
			return fmt.Errorf("registry: trusted directory %q: must be a clean absolute path", d)
		}
		if seen[d] {
			return fmt.Errorf("registry: trusted directory %q: duplicate", d)
		}
		seen[d] = true
	}

	for _, kv := range env {
		if k, _, ok := strings.Cut(kv, "="); !ok || k == "" {
			return fmt.Errorf("registry: environment entry %q: want KEY=VALUE", kv)
		}
	}
	return nil
}

func validateHandler(h Handler) error {
	if h.Program == "" || h.Verb == "" {
		return errors.New("empty program or verb")
	}
	if strings.ContainsRune(h.Program, '/') || h.Program == "." || h.Program == ".." {
		return fmt.Errorf("program %q must be a bare name", h.Program)
	}
	return nil
}
