package packaging

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
)

// realRootChecker implements RootChecker using os.Geteuid.
type realRootChecker struct{}

// NewRootChecker returns a RootChecker that checks the effective process UID.
func NewRootChecker() RootChecker {
	return &realRootChecker{}
}

func (c *realRootChecker) IsRoot() bool {
	return os.Geteuid() == 0
}

// osGroupResolver implements GroupResolver using the OS group database.
type osGroupResolver struct{}

// NewGroupResolver returns a GroupResolver backed by os/user.
func NewGroupResolver() GroupResolver {
	return osGroupResolver{}
}

func (osGroupResolver) LookupGID(name string) (int, error) {
	grp, err := user.LookupGroup(name)
	if err != nil {
		return 0, fmt.Errorf("packaging: lookup group %q: %w", name, err)
	}
	gid, err := strconv.Atoi(grp.Gid)
	if err != nil {
		return 0, fmt.Errorf("packaging: parse gid %q: %w", grp.Gid, err)
	}
	return gid, nil
}
