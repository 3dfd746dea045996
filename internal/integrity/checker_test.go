package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTemp creates a temporary file with the given content and returns its path.
func writeTemp(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "appdservice")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("writeTemp: %v", err)
	}
	return p
}

func sha256Hex(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func TestHashFile_ComputesSHA256(t *testing.T) {
	const content = "#!/bin/sh\nexec /sbin/service \"$@\"\n"
	p := writeTemp(t, content)

	got, err := HashFile(p)
	if err != nil {
		t.Fatalf("HashFile(%q) unexpected error: %v", p, err)
	}
	if want := sha256Hex(content); got != want {
		t.Errorf("HashFile(%q) = %s, want %s", p, got, want)
	}
}

func TestHashFile_EmptyFile(t *testing.T) {
	const emptyHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	got, err := HashFile(writeTemp(t, ""))
	if err != nil {
		t.Fatalf("HashFile() unexpected error: %v", err)
	}
	if got != emptyHash {
		t.Errorf("HashFile(empty) = %s, want %s", got, emptyHash)
	}
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "missing"))
	if err == nil || !strings.HasPrefix(err.Error(), "integrity: open") {
		t.Errorf("HashFile(missing) error = %v, want integrity: open error", err)
	}
}

func TestCheckFile(t *testing.T) {
	const content = "trampoline"
	p := writeTemp(t, content)
	sum := sha256Hex(content)

	tests := []struct {
		name     string
		expected string
		wantOK   bool
	}{
		{"no pin", "", true},
		{"match", sum, true},
		{"match uppercase", strings.ToUpper(sum), true},
		{"match with whitespace", " " + sum + "\n", true},
		{"mismatch", sha256Hex("other"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CheckFile(p, tt.expected)
			if err != nil {
				t.Fatalf("CheckFile() error = %v", err)
			}
			if res.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v", res.OK, tt.wantOK)
			}
			if res.Actual != sum {
				t.Errorf("Actual = %s, want %s", res.Actual, sum)
			}
		})
	}
}
