package domain

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// BuildCommand is a build tool invocation as declared by the user.
type BuildCommand struct {
	Program string
	Args    []string
	Dir     string
	Env     map[string]string
}

// String renders the command line for display.
func (c BuildCommand) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// RewriteOptions tunes the build command produced for debugging.
type RewriteOptions struct {
	NoRestore     bool
	Configuration string
	Framework     string
	ExtraArgs     []string
}

// DebugBuild is the result of rewriting a declared command into a debug build.
type DebugBuild struct {
	// Command is the build invocation to run.
	Command BuildCommand
	// Intercepted is true when the declared command was a run that got turned into a build.
	Intercepted bool
	// Target is the solution or project file named on the command line, if any.
	Target string
	// ProgramArgs are the arguments after "--", meant for the debugged program.
	ProgramArgs []string
}

const (
	verbBuild = "build"
	argsSep   = "--"
)

// debugBuildArgs makes the build report absolute output paths.
var debugBuildArgs = []string{"/p:GenerateFullPaths=true"}

// terminalLoggerEnv turns off the MSBuild terminal logger, which redraws the
// screen and hides the "name -> path" output lines when running under a pty.
const terminalLoggerEnv = "MSBUILDTERMINALLOGGER"

// runOnlyFlags are dropped because build rejects them. The value tells whether the flag takes an argument.
var runOnlyFlags = map[string]bool{
	"--launch-profile":    true,
	"-lp":                 true,
	"--no-launch-profile": false,
	"--no-build":          false,
	"--interactive":       false,
}

// valueFlags take a separate argument that must travel with them.
var valueFlags = map[string]struct{}{
	"-c": {}, "--configuration": {},
	"-f": {}, "--framework": {},
	"-r": {}, "--runtime": {},
	"-a": {}, "--arch": {},
	"-o": {}, "--output": {},
	"-v": {}, "--verbosity": {},
	"-s": {}, "--source": {},
	"--os": {}, "--property": {},
}

// RewriteForDebug turns a declared build tool command into the build that precedes a debug session.
// run and its alias r become build; build is kept as is; every other verb is rejected.
// The project flag of run becomes a positional target and arguments after "--" are split off
// for the debugged program.
func RewriteForDebug(cmd BuildCommand, opts RewriteOptions) (DebugBuild, error) {
	if !isBuildTool(cmd.Program) {
		return DebugBuild{}, zerr.With(zerr.Wrap(ErrCommandNotDebuggable, "not a dotnet command"),
			"program", cmd.Program)
	}
	if len(cmd.Args) == 0 {
		return DebugBuild{}, zerr.Wrap(ErrCommandNotDebuggable, "missing dotnet verb")
	}

	var intercepted bool
	switch verb := cmd.Args[0]; verb {
	case "run", "r":
		intercepted = true
	case verbBuild:
	default:
		return DebugBuild{}, zerr.With(zerr.Wrap(ErrCommandNotDebuggable, "unsupported dotnet verb"),
			"verb", verb)
	}

	flags, programArgs := splitAtSeparator(cmd.Args[1:])

	var target string
	var kept []string
	for i := 0; i < len(flags); i++ {
		arg := flags[i]
		name, value, hasValue := strings.Cut(arg, "=")

		if name == "--project" || (intercepted && name == "-p" && !strings.Contains(arg, ":")) {
			if hasValue {
				target = value
			} else if i+1 < len(flags) {
				target = flags[i+1]
				i++
			}
			continue
		}

		if takesValue, ok := runOnlyFlags[name]; ok {
			if takesValue && !hasValue && i+1 < len(flags) {
				i++
			}
			continue
		}

		if _, ok := valueFlags[name]; ok && !hasValue {
			kept = append(kept, arg)
			if i+1 < len(flags) {
				kept = append(kept, flags[i+1])
				i++
			}
			continue
		}

		if target == "" && !strings.HasPrefix(arg, "-") && (IsSolutionFile(arg) || IsProjectFile(arg)) {
			target = arg
			continue
		}

		kept = append(kept, arg)
	}

	args := []string{verbBuild}
	if target != "" {
		args = append(args, target)
	}
	args = append(args, kept...)

	if opts.Configuration != "" && !hasFlag(kept, "-c", "--configuration") {
		args = append(args, "--configuration", opts.Configuration)
	}
	if opts.Framework != "" && !hasFlag(kept, "-f", "--framework") {
		args = append(args, "--framework", opts.Framework)
	}
	if opts.NoRestore && !hasFlag(kept, "--no-restore") {
		args = append(args, "--no-restore")
	}
	args = append(args, debugBuildArgs...)
	if !hasFlag(kept, "-v", "--verbosity") {
		args = append(args, "-v:m")
	}
	args = append(args, opts.ExtraArgs...)

	env := maps.Clone(cmd.Env)
	if env == nil {
		env = make(map[string]string, 1)
	}
	if _, ok := env[terminalLoggerEnv]; !ok {
		env[terminalLoggerEnv] = "off"
	}

	return DebugBuild{
		Command: BuildCommand{
			Program: cmd.Program,
			Args:    args,
			Dir:     cmd.Dir,
			Env:     env,
		},
		Intercepted: intercepted,
		Target:      target,
		ProgramArgs: programArgs,
	}, nil
}

func isBuildTool(program string) bool {
	base := filepath.Base(program)
	base = strings.TrimSuffix(strings.ToLower(base), ".exe")
	return base == BuildTool
}

func splitAtSeparator(args []string) (before, after []string) {
	idx := slices.Index(args, argsSep)
	if idx < 0 {
		return args, nil
	}
	return args[:idx], slices.Clone(args[idx+1:])
}

// hasFlag reports whether any of names appears in args, alone or in the
// "name=value" and "name:value" forms.
func hasFlag(args []string, names ...string) bool {
	for _, arg := range args {
		for _, name := range names {
			if arg == name || strings.HasPrefix(arg, name+"=") || strings.HasPrefix(arg, name+":") {
				return true
			}
		}
	}
	return false
}
