//go:build !unix

package packaging

import "errors"

// ErrUnsupported is returned by Verify where file ownership cannot be read.
var ErrUnsupported = errors.New("packaging: verify: unsupported platform")

// Verify always fails off Unix.
func Verify(string, string) (Report, error) {
	return Report{}, ErrUnsupported
}
