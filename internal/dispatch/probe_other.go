//go:build !linux

package dispatch

import "errors"

var errUnsupported = errors.New("dispatch: unsupported platform")

// Exec is the production ExecFunc. It always fails off Linux.
var Exec ExecFunc = func(string, []string, []string) error { return errUnsupported }

// DirProber reports nothing as executable off Linux.
type DirProber struct{}

// ExecutableAt always returns false.
func (DirProber) ExecutableAt(string, string) bool { return false }
