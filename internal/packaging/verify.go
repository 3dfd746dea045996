//go:build unix

package packaging

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/appdynamics/appdservice/internal/integrity"
)

// Verify inspects the file at path without following a final symlink and
// lists every way it departs from a safe setuid-root install. When
// expectedSHA256 is non-empty the file's digest must match it.
func Verify(path, expectedSHA256 string) (Report, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Report{}, fmt.Errorf("packaging: lstat %s: %w", path, err)
	}

	mode := uint32(st.Mode)
	r := Report{
		Path: path,
		UID:  st.Uid,
		GID:  st.Gid,
		Mode: fileMode(mode),
	}

	if mode&unix.S_IFMT != unix.S_IFREG {
		r.Problems = append(r.Problems, "not a regular file")
		return r, nil
	}
	if st.Uid != 0 {
		r.Problems = append(r.Problems, fmt.Sprintf("owned by uid %d, want 0", st.Uid))
	}
	if mode&unix.S_ISUID == 0 {
		r.Problems = append(r.Problems, "setuid bit not set")
	}
	if mode&0o002 != 0 {
		r.Problems = append(r.Problems, "world-writable")
	}
	if mode&0o020 != 0 {
		r.Problems = append(r.Problems, "group-writable")
	}
	if mode&0o001 != 0 {
		r.Problems = append(r.Problems, "executable by others")
	}

	res, err := integrity.CheckFile(path, expectedSHA256)
	if err != nil {
		return r, err
	}
	r.SHA256 = res.Actual
	if !res.OK {
		r.Problems = append(r.Problems, fmt.Sprintf("sha256 %s, want %s", res.Actual, res.Expected))
	}
	return r, nil
}

func fileMode(mode uint32) os.FileMode {
	m := os.FileMode(mode & 0o777)
	if mode&unix.S_ISUID != 0 {
		m |= os.ModeSetuid
	}
	if mode&unix.S_ISGID != 0 {
		m |= os.ModeSetgid
	}
	switch mode & unix.S_IFMT {
	case unix.S_IFDIR:
		m |= os.ModeDir
	case unix.S_IFLNK:
		m |= os.ModeSymlink
	}
	return m
}
