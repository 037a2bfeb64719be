package domain

import "fmt"

// ScenarioState is a step of the build-to-debug state machine.
type ScenarioState int

const (
	// StateIdle is the state before anything ran.
	StateIdle ScenarioState = iota
	// StateResolving detects the build target and picks the startup project.
	StateResolving
	// StateBuilding runs the build command.
	StateBuilding
	// StateInterpreting locates the artifact from the build output.
	StateInterpreting
	// StateLaunching hands the launch request to the debugger.
	StateLaunching
	// StateReady means the debugger accepted the launch request and the session ended.
	StateReady
	// StateFailed means the scenario stopped; the cause is kept with the state it failed in.
	StateFailed
)

// String returns the name of the state.
func (s ScenarioState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateBuilding:
		return "building"
	case StateInterpreting:
		return "interpreting"
	case StateLaunching:
		return "launching"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ScenarioError is the terminal error of a failed scenario.
type ScenarioError struct {
	// State is the state the scenario was in when it failed.
	State ScenarioState
	// Cause is the error that stopped the scenario.
	Cause error
}

// Error names the failed step followed by its cause.
func (e *ScenarioError) Error() string {
	return "failed while " + e.activity() + ": " + e.Cause.Error()
}

func (e *ScenarioError) activity() string {
	switch e.State {
	case StateInterpreting:
		return "interpreting build output"
	case StateLaunching:
		return "debugging"
	default:
		return e.State.String()
	}
}

// Unwrap returns the cause.
func (e *ScenarioError) Unwrap() error {
	return e.Cause
}

// ResolutionRule names the rule that picked the startup project.
type ResolutionRule string

const (
	// RuleExplicit means the solution declared the startup project.
	RuleExplicit ResolutionRule = "explicit"
	// RuleOverride means the user named the startup project.
	RuleOverride ResolutionRule = "override"
	// RuleFirstExecutable means the first executable project in declaration order was picked.
	RuleFirstExecutable ResolutionRule = "first-executable"
	// RuleFirstDeclared means no project looked executable and the first one was picked.
	RuleFirstDeclared ResolutionRule = "first-declared"
	// RuleStandalone means the build target was a project file, not a solution.
	RuleStandalone ResolutionRule = "standalone-project"
	// RuleNone means there was nothing to pick from.
	RuleNone ResolutionRule = "none"
)

// Resolution explains how the startup project was chosen.
type Resolution struct {
	Rule ResolutionRule
	// Ambiguous is set when more than one project could have been picked by the same rule.
	Ambiguous bool
	// Candidates lists the names of the projects that competed under Rule.
	Candidates []string
}

// DebugRequest is the input of a scenario run.
type DebugRequest struct {
	// Command is the build command as the user declared it.
	Command BuildCommand
	// StartupProject overrides the startup project resolution, by name or identity.
	StartupProject string
	StopAtEntry    bool
	Console        ConsoleKind
	// Args are the program arguments used when the command carries none after "--".
	Args    []string
	Env     map[string]string
	Rewrite RewriteOptions
	// Classifier replaces the default project classifier. It is refined with project file metadata.
	Classifier Classifier
	// OutputDirs are scanned when the build output names no artifact.
	OutputDirs []string
	// StreamBuild streams build output while it runs. Otherwise it is shown only when the build fails.
	StreamBuild bool
}

// BuildFailure is the error of a build that exited with a non-zero status.
type BuildFailure struct {
	ExitCode int
	// Output is the combined build output, verbatim.
	Output string
	// Cause wraps ErrBuildFailed.
	Cause error
}

// Error returns the message of the cause.
func (e *BuildFailure) Error() string {
	return e.Cause.Error()
}

// Unwrap returns the cause.
func (e *BuildFailure) Unwrap() error {
	return e.Cause
}

// Scenario is the outcome of a successful run.
type Scenario struct {
	Build      DebugBuild
	Solution   *Solution
	Startup    ProjectDescriptor
	Resolution Resolution
	Artifact   BuildArtifact
	Launch     *LaunchRequest
}
