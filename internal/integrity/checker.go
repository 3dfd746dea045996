// Package integrity computes SHA-256 digests of the trampoline and of the
// handler programs it resolves, so operators can pin what is installed.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// CheckResult holds the outcome of comparing a file against a pinned digest.
type CheckResult struct {
	Path string
	// Expected is empty when no digest was pinned.
	Expected string
	Actual   string
	OK       bool
}

// HashFile returns the hex-encoded SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("integrity: open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("integrity: hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CheckFile hashes path and compares it with expected, which may be given in
// either case. An empty expected value always yields OK.
func CheckFile(path, expected string) (CheckResult, error) {
	actual, err := HashFile(path)
	if err != nil {
		return CheckResult{}, err
	}
	expected = strings.ToLower(strings.TrimSpace(expected))
	return CheckResult{
		Path:     path,
		Expected: expected,
		Actual:   actual,
		OK:       expected == "" || expected == actual,
	}, nil
}
