package packaging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/appdynamics/appdservice/internal/fsutil"
)

// Installer places and removes the trampoline binary.
type Installer struct {
	cfg    InstallConfig
	root   RootChecker
	groups GroupResolver
	chown  func(path string, uid, gid int) error
	logger *slog.Logger
}

// NewInstaller creates a new Installer with defaults applied.
func NewInstaller(cfg InstallConfig, root RootChecker, groups GroupResolver, logger *slog.Logger) *Installer {
	cfg.ApplyDefaults()
	return &Installer{
		cfg:    cfg,
		root:   root,
		groups: groups,
		chown:  os.Chown,
		logger: logger.With("component", "packaging"),
	}
}

// Install copies the trampoline to BinaryPath owned by root and the
// configured group, with the configured setuid mode. The final file appears
// in one rename with ownership and mode already applied.
func (ins *Installer) Install() error {
	// 1. Check root
	if !ins.root.IsRoot() {
		return errors.New("packaging: install requires root privileges")
	}

	// 2. Validate config
	if err := ins.cfg.Validate(); err != nil {
		return err
	}
	if ins.cfg.SourcePath == "" {
		return errors.New("packaging: install: SourcePath is required")
	}
	info, err := os.Stat(ins.cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("packaging: stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("packaging: source %s is not a regular file", ins.cfg.SourcePath)
	}

	// 3. Resolve group
	gid, err := ins.groups.LookupGID(ins.cfg.Group)
	if err != nil {
		return err
	}

	// 4. Create parent directory
	if err := os.MkdirAll(filepath.Dir(ins.cfg.BinaryPath), 0o755); err != nil {
		return fmt.Errorf("packaging: create binary directory: %w", err)
	}

	// 5. Copy, chown, chmod, rename
	err = fsutil.CopyFileAtomic(ins.cfg.SourcePath, ins.cfg.BinaryPath, ins.cfg.Mode, func(tmp string) error {
		return ins.chown(tmp, 0, gid)
	})
	if err != nil {
		return fmt.Errorf("packaging: install binary: %w", err)
	}

	ins.logger.Info("trampoline installed",
		"src", ins.cfg.SourcePath,
		"dst", ins.cfg.BinaryPath,
		"group", ins.cfg.Group,
		"mode", ins.cfg.Mode.String(),
	)
	return nil
}

// Uninstall removes the installed trampoline. A missing binary is not an error.
func (ins *Installer) Uninstall() error {
	if !ins.root.IsRoot() {
		return errors.New("packaging: uninstall requires root privileges")
	}

	if err := os.Remove(ins.cfg.BinaryPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ins.logger.Info("appdservice is not installed, nothing to do", "path", ins.cfg.BinaryPath)
			return nil
		}
		return fmt.Errorf("packaging: remove binary: %w", err)
	}
	ins.logger.Info("binary removed", "path", ins.cfg.BinaryPath)
	return nil
}
