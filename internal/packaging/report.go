package packaging

import "os"

// Report describes an installed trampoline.
type Report struct {
	Path     string
	UID      uint32
	GID      uint32
	Mode     os.FileMode
	SHA256   string
	Problems []string
}

// OK reports whether no problems were found.
func (r Report) OK() bool { return len(r.Problems) == 0 }
