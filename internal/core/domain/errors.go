package domain

import "go.trai.ch/zerr"

var (
	// ErrSolutionParse is returned when a solution file cannot be parsed at all.
	ErrSolutionParse = zerr.New("failed to parse solution")

	// ErrSolutionNotFound is returned when no solution file can be found from the working directory.
	ErrSolutionNotFound = zerr.New("no solution file found")

	// ErrSolutionRead is returned when the solution file cannot be read.
	ErrSolutionRead = zerr.New("failed to read solution file")

	// ErrProjectFileRead is returned when a project file cannot be read or decoded.
	ErrProjectFileRead = zerr.New("failed to read project file")

	// ErrNoStartupProject is returned when a solution declares no projects to debug.
	ErrNoStartupProject = zerr.New("solution has no projects to debug")

	// ErrProjectNotFound is returned when a requested project is not part of the solution.
	ErrProjectNotFound = zerr.New("project not found in solution")

	// ErrCommandNotDebuggable is returned when a build command cannot be turned into a debug build.
	ErrCommandNotDebuggable = zerr.New("command is not debuggable")

	// ErrBuildFailed is returned when the build tool exits with a non-zero status.
	ErrBuildFailed = zerr.New("build failed")

	// ErrArtifactNotFound is returned when no runnable build artifact can be located.
	ErrArtifactNotFound = zerr.New("build succeeded but no runnable artifact was found; " +
		"check that the project produces an executable (OutputType Exe) and that bin/Debug or bin/Release exists")

	// ErrDebuggerUnavailable is returned when no debugger executable can be located.
	ErrDebuggerUnavailable = zerr.New("no .NET debugger found; install netcoredbg " +
		"(https://github.com/Samsung/netcoredbg) or vsdbg and put it on PATH, " +
		"or set debugger.path in dbridge.yaml")

	// ErrInvalidLaunchRequest is returned when a launch request is missing required fields.
	ErrInvalidLaunchRequest = zerr.New("invalid launch request")

	// ErrInvalidConsole is returned when a console kind is not one of the supported values.
	ErrInvalidConsole = zerr.New("invalid console, expected integratedTerminal, externalTerminal or internalConsole")

	// ErrSessionFailed is returned when the debugger session cannot be started or ends abnormally.
	ErrSessionFailed = zerr.New("debug session failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileReadFailed is returned when the launch env file cannot be read.
	ErrEnvFileReadFailed = zerr.New("failed to read env file")
)
