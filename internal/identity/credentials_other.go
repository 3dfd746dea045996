//go:build !linux

package identity

import "os"

type osCredentials struct{}

// NewOSCredentials returns Credentials backed by the running process.
// Elevation is only implemented on Linux.
func NewOSCredentials() Credentials {
	return osCredentials{}
}

func (osCredentials) Getuid() int       { return os.Getuid() }
func (osCredentials) Geteuid() int      { return os.Geteuid() }
func (osCredentials) BecomeRoot() error { return ErrUnsupported }
