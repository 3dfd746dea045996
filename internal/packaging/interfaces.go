package packaging

// RootChecker abstracts privilege checking for testability.
type RootChecker interface {
	// IsRoot returns true if the current process has root privileges.
	IsRoot() bool
}

// GroupResolver maps a group name to its numeric id.
type GroupResolver interface {
	LookupGID(name string) (int, error)
}
