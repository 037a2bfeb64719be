package domain

import "go.trai.ch/zerr"

// DebuggerType is the debug adapter type for .NET Core programs.
const DebuggerType = "coreclr"

// RequestKind is the DAP request used to start debugging.
type RequestKind string

const (
	// RequestLaunch starts the program under the debugger.
	RequestLaunch RequestKind = "launch"
	// RequestAttach attaches to a running process.
	RequestAttach RequestKind = "attach"
)

// ConsoleKind selects where the debugged program's console is shown.
type ConsoleKind string

const (
	// ConsoleIntegrated runs the program in the editor's integrated terminal.
	ConsoleIntegrated ConsoleKind = "integratedTerminal"
	// ConsoleExternal runs the program in an external terminal window.
	ConsoleExternal ConsoleKind = "externalTerminal"
	// ConsoleInternal sends program output to the debug console.
	ConsoleInternal ConsoleKind = "internalConsole"
)

// ParseConsole converts a user supplied console name into a ConsoleKind.
// The empty string selects the integrated terminal.
func ParseConsole(s string) (ConsoleKind, error) {
	switch ConsoleKind(s) {
	case "":
		return ConsoleIntegrated, nil
	case ConsoleIntegrated, ConsoleExternal, ConsoleInternal:
		return ConsoleKind(s), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidConsole, "unknown console"), "console", s)
	}
}

// LaunchRequest is everything a debugger needs to start or attach to the program.
type LaunchRequest struct {
	Kind        RequestKind
	Name        string
	Type        string
	Program     string
	Cwd         string
	Args        []string
	Env         map[string]string
	StopAtEntry bool
	Console     ConsoleKind
	ProcessID   int
}

// NewLaunchRequest returns a launch request for program with the default console.
func NewLaunchRequest(name, program, cwd string) *LaunchRequest {
	return &LaunchRequest{
		Kind:    RequestLaunch,
		Name:    name,
		Type:    DebuggerType,
		Program: program,
		Cwd:     cwd,
		Console: ConsoleIntegrated,
	}
}

// Validate checks the fields required by the request kind.
func (r *LaunchRequest) Validate() error {
	switch r.Kind {
	case RequestLaunch:
		if r.Program == "" {
			return zerr.Wrap(ErrInvalidLaunchRequest, "launch requires a program")
		}
	case RequestAttach:
		if r.ProcessID <= 0 {
			return zerr.With(zerr.Wrap(ErrInvalidLaunchRequest, "attach requires a process id"),
				"process_id", r.ProcessID)
		}
	default:
		return zerr.With(zerr.Wrap(ErrInvalidLaunchRequest, "request must be launch or attach"),
			"request", string(r.Kind))
	}
	if _, err := ParseConsole(string(r.Console)); err != nil {
		return err
	}
	return nil
}

// LaunchConfiguration is the JSON shape of a coreclr launch or attach configuration.
type LaunchConfiguration struct {
	Type        string            `json:"type"`
	Request     string            `json:"request"`
	Name        string            `json:"name"`
	Program     string            `json:"program,omitempty"`
	Args        []string          `json:"args,omitempty"`
	Cwd         string            `json:"cwd,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	StopAtEntry bool              `json:"stopAtEntry"`
	Console     string            `json:"console,omitempty"`
	ProcessID   int               `json:"processId,omitempty"`
}

// Configuration renders the request as debugger launch arguments.
func (r *LaunchRequest) Configuration() LaunchConfiguration {
	typ := r.Type
	if typ == "" {
		typ = DebuggerType
	}
	cfg := LaunchConfiguration{
		Type:        typ,
		Request:     string(r.Kind),
		Name:        r.Name,
		StopAtEntry: r.StopAtEntry,
		Console:     string(r.Console),
	}
	if r.Kind == RequestAttach {
		cfg.ProcessID = r.ProcessID
		return cfg
	}
	cfg.Program = r.Program
	cfg.Args = r.Args
	cfg.Cwd = r.Cwd
	cfg.Env = r.Env
	return cfg
}
