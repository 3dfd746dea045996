// Package identity enforces who may invoke appdservice and performs the one-way
// transition to root once the caller has been accepted.
package identity

import (
	"errors"
	"fmt"
	"strconv"
)

// Exit statuses for identity failures.
const (
	ExitWrongUser = 2
	ExitNotSetuid = 3
)

// ErrUnsupported is returned by Credentials on platforms without a
// process-wide credential change.
var ErrUnsupported = errors.New("identity: unsupported platform")

// Credentials reads and changes the identity of the running process.
type Credentials interface {
	// Getuid returns the real user id.
	Getuid() int

	// Geteuid returns the effective user id.
	Geteuid() int

	// BecomeRoot sets real, effective and saved user and group ids to 0 for
	// every thread of the process and clears supplementary groups.
	BecomeRoot() error
}

// Kind classifies an IdentityError.
type Kind int

const (
	// WrongRealUser means the real uid is neither the agent uid nor root.
	WrongRealUser Kind = iota + 1
	// NotSetuidRoot means the effective uid is not root.
	NotSetuidRoot
	// ElevationFailed means a credential change was refused by the kernel.
	ElevationFailed
	// AgentUnconfigured means the build carries no usable agent uid.
	AgentUnconfigured
)

// IdentityError reports a caller or installation that fails the privilege policy.
type IdentityError struct {
	Kind     Kind
	AgentUID uint32
	Err      error
}

func (e *IdentityError) Error() string {
	switch e.Kind {
	case WrongRealUser:
		return fmt.Sprintf("must be run as user id %d or root", e.AgentUID)
	case NotSetuidRoot:
		return "must be run setuid root"
	case ElevationFailed:
		return fmt.Sprintf("cannot become root: %v", e.Err)
	case AgentUnconfigured:
		return fmt.Sprintf("agent user id not configured: %v", e.Err)
	default:
		return "identity: unknown failure"
	}
}

func (e *IdentityError) Unwrap() error { return e.Err }

// ExitCode maps the failure to the process exit status.
func (e *IdentityError) ExitCode() int {
	switch e.Kind {
	case NotSetuidRoot, ElevationFailed:
		return ExitNotSetuid
	default:
		return ExitWrongUser
	}
}

// ParseAgentUID parses the build-time agent uid. Root is rejected: the agent
// user must be an unprivileged account.
func ParseAgentUID(s string) (uint32, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	uid, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	if uid == 0 {
		return 0, errors.New("agent uid must not be 0")
	}
	return uint32(uid), nil
}

// Gate checks the caller against the agent uid before elevating.
type Gate struct {
	agentUID uint32
	creds    Credentials
}

// NewGate builds a Gate for the build-time agent uid string.
func NewGate(agentUID string, creds Credentials) (*Gate, error) {
	uid, err := ParseAgentUID(agentUID)
	if err != nil {
		return nil, &IdentityError{Kind: AgentUnconfigured, Err: err}
	}
	return &Gate{agentUID: uid, creds: creds}, nil
}

// AgentUID returns the uid permitted besides root.
func (g *Gate) AgentUID() uint32 { return g.agentUID }

// Elevate verifies the real and effective uids and then becomes root.
// No credential is changed unless both checks pass.
func (g *Gate) Elevate() error {
	ruid := g.creds.Getuid()
	if ruid != 0 && (ruid < 0 || uint64(ruid) != uint64(g.agentUID)) {
		return &IdentityError{Kind: WrongRealUser, AgentUID: g.agentUID}
	}
	if g.creds.Geteuid() != 0 {
		return &IdentityError{Kind: NotSetuidRoot, AgentUID: g.agentUID}
	}
	if err := g.creds.BecomeRoot(); err != nil {
		return &IdentityError{Kind: ElevationFailed, AgentUID: g.agentUID, Err: err}
	}
	return nil
}
