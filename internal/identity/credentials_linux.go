//go:build linux

package identity

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

type osCredentials struct{}

// NewOSCredentials returns Credentials backed by the running process.
func NewOSCredentials() Credentials {
	return osCredentials{}
}

func (osCredentials) Getuid() int  { return unix.Getuid() }
func (osCredentials) Geteuid() int { return unix.Geteuid() }

// BecomeRoot changes the credentials of every OS thread in the process. The
// x/sys/unix equivalents only affect the calling thread.
func (osCredentials) BecomeRoot() error {
	if err := syscall.Setgroups([]int{}); err != nil {
		return fmt.Errorf("setgroups: %w", err)
	}
	if err := syscall.Setresgid(0, 0, 0); err != nil {
		return fmt.Errorf("setresgid(0, 0, 0): %w", err)
	}
	if err := syscall.Setresuid(0, 0, 0); err != nil {
		return fmt.Errorf("setresuid(0, 0, 0): %w", err)
	}
	return nil
}
