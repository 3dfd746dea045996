//go:build linux

package dispatch

import "golang.org/x/sys/unix"

// Exec is the production ExecFunc.
var Exec ExecFunc = unix.Exec

// DirProber checks executability relative to an open descriptor of the
// directory, using the effective ids of the process.
type DirProber struct{}

// ExecutableAt opens dir, asks the kernel whether program inside it may be
// executed, and closes dir again before returning.
func (DirProber) ExecutableAt(dir, program string) bool {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return false
	}
	defer unix.Close(fd)

	return unix.Faccessat(fd, program, unix.X_OK, unix.AT_EACCESS) == nil
}
