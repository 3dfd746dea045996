// Package packaging installs and checks the appdservice trampoline as a
// setuid-root binary executable only by the agent group.
package packaging

import (
	"errors"
	"os"
	"path/filepath"
)

// InstallConfig holds the settings for installing the trampoline.
type InstallConfig struct {
	// SourcePath is the built trampoline to install. Required by Install.
	SourcePath string

	// BinaryPath is where the trampoline is installed.
	// Default: /usr/local/sbin/appdservice
	BinaryPath string

	// Group owns the installed binary.
	// Default: appdynamics
	Group string

	// Mode is the permission of the installed binary.
	// Default: setuid, rwxr-x---
	Mode os.FileMode
}

// DefaultBinaryPath is the default install location of the trampoline.
const DefaultBinaryPath = "/usr/local/sbin/appdservice"

// DefaultGroup is the default group owner of the installed trampoline.
const DefaultGroup = "appdynamics"

// DefaultMode is the default permission of the installed trampoline.
const DefaultMode = os.ModeSetuid | 0o750

// ApplyDefaults sets default values for zero-valued fields.
func (c *InstallConfig) ApplyDefaults() {
	if c.BinaryPath == "" {
		c.BinaryPath = DefaultBinaryPath
	}
	if c.Group == "" {
		c.Group = DefaultGroup
	}
	if c.Mode == 0 {
		c.Mode = DefaultMode
	}
}

// Validate checks that required fields are set and the mode is safe.
func (c *InstallConfig) Validate() error {
	if c.BinaryPath == "" {
		return errors.New("packaging: config: BinaryPath is required")
	}
	if !filepath.IsAbs(c.BinaryPath) {
		return errors.New("packaging: config: BinaryPath must be absolute")
	}
	if c.Group == "" {
		return errors.New("packaging: config: Group is required")
	}
	if c.Mode&os.ModeSetuid == 0 {
		return errors.New("packaging: config: Mode must include the setuid bit")
	}
	if c.Mode.Perm()&0o022 != 0 {
		return errors.New("packaging: config: Mode must not be group- or world-writable")
	}
	return nil
}
