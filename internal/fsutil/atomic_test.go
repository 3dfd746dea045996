package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestCopyFileAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "appdservice")
	if err := os.WriteFile(src, []byte("binary"), 0o644); err != nil {
		t.Fatal(err)
	}

	var prepared string
	err := CopyFileAtomic(src, dst, 0o750, func(tmp string) error {
		prepared = tmp
		return nil
	})
	if err != nil {
		t.Fatalf("CopyFileAtomic() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "binary" {
		t.Errorf("dst content = %q, want %q", data, "binary")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Errorf("dst mode = %o, want 750", info.Mode().Perm())
	}
	if filepath.Dir(prepared) != dir || !strings.HasPrefix(filepath.Base(prepared), ".tmp-appdservice-") {
		t.Errorf("prepare called with %q", prepared)
	}
	if _, err := os.Stat(prepared); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestCopyFileAtomic_PrepareFailureLeavesDstUntouched(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "appdservice")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := CopyFileAtomic(src, dst, os.ModeSetuid|0o750, func(string) error {
		return errors.New("chown: operation not permitted")
	})
	if err == nil {
		t.Fatal("CopyFileAtomic() = nil, want error")
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "old" {
		t.Errorf("dst content = %q, want %q", data, "old")
	}
	assertOnlyEntries(t, dir, "appdservice", "src")
}

func TestCopyFileAtomic_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFileAtomic(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"), 0o755, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CopyFileAtomic() error = %v, want ErrNotExist", err)
	}
}

func assertOnlyEntries(t *testing.T, dir string, want ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if !slices.Equal(got, want) {
		t.Errorf("entries of %s = %q, want %q", dir, got, want)
	}
}

func TestCopyFileAtomic_StaleTempFileFromInterruptedCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "appdservice")
	if err := os.WriteFile(src, []byte("binary"), 0o644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, ".tmp-appdservice")
	if err := os.WriteFile(stale, []byte("partial"), 0o600); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := CopyFileAtomic(src, dst, 0o750, nil); err != nil {
			t.Fatalf("CopyFileAtomic() run %d error = %v", i, err)
		}
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "binary" {
		t.Errorf("dst content = %q, want %q", data, "binary")
	}
	assertOnlyEntries(t, dir, ".tmp-appdservice", "appdservice", "src")
}
