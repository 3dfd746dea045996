// Package registry holds the compiled-in tables that bound what appdservice
// may do: the services it manages, the actions it performs on them, the
// directories handler programs are taken from, and the environment handed to
// those programs.
//
// The tables are package-level values populated from literals only. Nothing
// in this package reads input, the environment, or the filesystem, and every
// accessor returns a copy so callers cannot mutate the tables.
package registry

// MaxHandlers is the fixed capacity of an action's handler chain.
const MaxHandlers = 3

// ServiceIndex identifies an entry of the service table.
type ServiceIndex int

// ActionIndex identifies an entry of the action table.
type ActionIndex int

// ServiceEntry is one manageable service.
type ServiceEntry struct {
	// DisplayName is the token an operator passes on the command line.
	DisplayName string

	// ManagerName is the name handed to the service manager. It is a field
	// of its own even where it equals DisplayName; a future entry may differ.
	ManagerName string
}

// Handler is one external command able to carry out an action.
type Handler struct {
	// Program is the bare executable name looked up in the trusted directories.
	Program string

	// Verb is the single argument that selects the operation in Program.
	Verb string
}

// ActionEntry is a named lifecycle operation and its handler preference chain.
type ActionEntry struct {
	Name string

	handlers [MaxHandlers]Handler
	n        int
}

func newAction(name string, handlers ...Handler) ActionEntry {
	a := ActionEntry{Name: name, n: len(handlers)}
	copy(a.handlers[:], handlers)
	return a
}

// Len returns the number of real handlers in the chain.
func (a ActionEntry) Len() int {
	return min(a.n, MaxHandlers)
}

// Handlers returns the chain in preference order.
func (a ActionEntry) Handlers() []Handler {
	out := make([]Handler, a.Len())
	copy(out, a.handlers[:a.Len()])
	return out
}

var services = [...]ServiceEntry{
	{DisplayName: "appdcontroller", ManagerName: "appdcontroller"},
	{DisplayName: "appdcontroller-db", ManagerName: "appdcontroller-db"},
	{DisplayName: "appdynamics-machine-agent", ManagerName: "appdynamics-machine-agent"},
}

var actions = [...]ActionEntry{
	newAction("status",
		Handler{Program: "service", Verb: "status"}),
	newAction("start",
		Handler{Program: "service", Verb: "start"}),
	newAction("stop",
		Handler{Program: "service", Verb: "stop"}),
	newAction("enable",
		Handler{Program: "chkconfig", Verb: "on"},
		Handler{Program: "update-rc.d", Verb: "enable"}),
	newAction("disable",
		Handler{Program: "chkconfig", Verb: "off"},
		Handler{Program: "update-rc.d", Verb: "disable"}),
}

// trustedDirs are searched in order for handler programs.
var trustedDirs = [...]string{
	"/sbin",
	"/usr/sbin",
}

// execEnv replaces the caller's environment for the handler program.
var execEnv = [...]string{
	"PATH=/sbin:/usr/sbin:/bin:/usr/bin",
}

func init() {
	if err := Validate(); err != nil {
		panic(err)
	}
}

// Services returns the service table in registry order.
func Services() []ServiceEntry {
	out := make([]ServiceEntry, len(services))
	copy(out, services[:])
	return out
}

// Actions returns the action table in registry order.
func Actions() []ActionEntry {
	out := make([]ActionEntry, len(actions))
	copy(out, actions[:])
	return out
}

// Service returns the entry at i. It panics if i is out of range.
func Service(i ServiceIndex) ServiceEntry {
	return services[i]
}

// Action returns the entry at i. It panics if i is out of range.
func Action(i ActionIndex) ActionEntry {
	return actions[i]
}

// TrustedDirs returns the handler search directories in probe order.
func TrustedDirs() []string {
	out := make([]string, len(trustedDirs))
	copy(out, trustedDirs[:])
	return out
}

// Environment returns the fixed environment for handler programs.
func Environment() []string {
	out := make([]string, len(execEnv))
	copy(out, execEnv[:])
	return out
}

// LookupService finds the service whose DisplayName equals name exactly.
func LookupService(name string) (ServiceIndex, bool) {
	for i := range services {
		if services[i].DisplayName == name {
			return ServiceIndex(i), true
		}
	}
	return 0, false
}

// LookupAction finds the action whose Name equals name exactly.
func LookupAction(name string) (ActionIndex, bool) {
	for i := range actions {
		if actions[i].Name == name {
			return ActionIndex(i), true
		}
	}
	return 0, false
}

// ActionNames returns the action names in registry order.
func ActionNames() []string {
	out := make([]string, len(actions))
	for i := range actions {
		out[i] = actions[i].Name
	}
	return out
}
