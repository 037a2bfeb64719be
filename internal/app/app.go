// Package app implements the application layer for dbridge.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/dbridge/internal/adapters/dap"
	"go.trai.ch/dbridge/internal/adapters/detector"
	"go.trai.ch/dbridge/internal/adapters/linear"
	"go.trai.ch/dbridge/internal/adapters/telemetry"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/dbridge/internal/core/ports"
	"go.trai.ch/dbridge/internal/engine/resolver"
	"go.trai.ch/dbridge/internal/engine/scenario"
	"go.trai.ch/zerr"
)

// TracerName names the tracer of debug scenarios.
const TracerName = "dbridge"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	solutions    ports.SolutionLoader
	resolver     *resolver.Resolver
	executor     ports.Executor
	artifacts    ports.ArtifactLocator
	debuggers    ports.DebuggerLocator
	logger       ports.Logger

	out    io.Writer
	errOut io.Writer
	getwd  func() (string, error)
	detect func() detector.OutputMode

	verbose bool
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	solutions ports.SolutionLoader,
	res *resolver.Resolver,
	executor ports.Executor,
	artifacts ports.ArtifactLocator,
	debuggers ports.DebuggerLocator,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		solutions:    solutions,
		resolver:     res,
		executor:     executor,
		artifacts:    artifacts,
		debuggers:    debuggers,
		logger:       log,
		out:          os.Stdout,
		errOut:       os.Stderr,
		getwd:        os.Getwd,
		detect:       detector.DetectEnvironment,
	}
}

// WithOutput sets the writers for command results and for progress output.
func (a *App) WithOutput(out, errOut io.Writer) *App {
	a.out = out
	a.errOut = errOut
	return a
}

// WithWorkingDir makes commands resolve relative paths against dir instead of the process working directory.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// WithOutputMode replaces terminal detection.
func (a *App) WithOutputMode(mode detector.OutputMode) *App {
	a.detect = func() detector.OutputMode { return mode }
	return a
}

// verboseLogger is implemented by loggers that can switch format and level at runtime.
type verboseLogger interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging selects the log format ("auto", "pretty" or "json") and verbosity.
func (a *App) ConfigureLogging(format string, verbose bool) error {
	logFormat, err := detector.ResolveLogFormat(format)
	if err != nil {
		return err
	}
	a.verbose = verbose
	if l, ok := a.logger.(verboseLogger); ok {
		l.SetJSON(logFormat == detector.FormatJSON)
		l.SetVerbose(verbose)
	}
	return nil
}

// DebugOptions configures the Debug method.
type DebugOptions struct {
	// Command is the declared build command, program first.
	Command        []string
	StartupProject string
	StopAtEntry    bool
	// Console overrides the configured console kind when set.
	Console string
	// Emit prints the launch configuration instead of starting a debugger.
	Emit bool
	// OutputMode is "auto", "interactive" or "linear".
	OutputMode string
	// Quiet hides phase progress. A failed build still prints its output.
	Quiet bool
}

// Debug builds the program declared by opts.Command and debugs it.
func (a *App) Debug(ctx context.Context, opts DebugOptions) error {
	if len(opts.Command) == 0 {
		return zerr.Wrap(domain.ErrCommandNotDebuggable, "no command given")
	}

	cwd, err := a.getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	req, err := a.debugRequest(cwd, settings, opts)
	if err != nil {
		return err
	}

	mode, err := detector.ResolveMode(a.detect(), opts.OutputMode)
	if err != nil {
		return err
	}
	req.StreamBuild = !opts.Quiet && (mode == detector.ModeLinear || a.verbose)

	renderer := linear.NewRenderer(a.errOut)
	var tracer ports.Tracer = telemetry.NewNoOpTracer()
	if !opts.Quiet {
		provider := telemetry.NewProvider(telemetry.NewBridge(renderer))
		defer func() {
			_ = provider.Shutdown(context.WithoutCancel(ctx))
		}()
		tracer = telemetry.NewOTelTracer(provider, TracerName).WithRenderer(renderer)
	}

	var session ports.DebugSession
	if opts.Emit {
		session = dap.NewEmitter(a.out)
	} else {
		session = dap.NewSession(a.debuggers, settings.Debugger, a.out, a.logger)
	}

	if err := renderer.Start(ctx); err != nil {
		return err
	}
	builder := scenario.NewBuilder(a.solutions, a.resolver, a.executor, a.artifacts, session, tracer, a.logger)
	_, runErr := builder.Run(ctx, req)
	_ = renderer.Stop()

	if runErr != nil {
		var failure *domain.BuildFailure
		if errors.As(runErr, &failure) && !req.StreamBuild {
			_, _ = io.WriteString(a.errOut, failure.Output)
		}
		return runErr
	}
	return nil
}

func (a *App) debugRequest(cwd string, settings *domain.Settings, opts DebugOptions) (domain.DebugRequest, error) {
	console := settings.Launch.Console
	if opts.Console != "" {
		parsed, err := domain.ParseConsole(opts.Console)
		if err != nil {
			return domain.DebugRequest{}, err
		}
		console = parsed
	}

	startup := opts.StartupProject
	if startup == "" {
		startup = settings.Resolver.StartupProject
	}

	return domain.DebugRequest{
		Command: domain.BuildCommand{
			Program: opts.Command[0],
			Args:    opts.Command[1:],
			Dir:     cwd,
		},
		StartupProject: startup,
		StopAtEntry:    opts.StopAtEntry || settings.Launch.StopAtEntry,
		Console:        console,
		Args:           settings.Launch.Args,
		Env:            settings.Launch.Env,
		Rewrite:        settings.Build,
		Classifier:     settings.Classifier(),
		OutputDirs:     settings.Artifact.OutputDirs,
	}, nil
}

// LocateOptions configures the Locate method.
type LocateOptions struct {
	// Input holds the build output to read.
	Input       io.Reader
	ProjectRoot string
	StartupName string
}

// Locate reads build output and prints the path of the artifact it names,
// scanning the project's output directories when it names none.
func (a *App) Locate(_ context.Context, opts LocateOptions) error {
	cwd, err := a.getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}
	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	lines, err := readLines(opts.Input)
	if err != nil {
		return zerr.Wrap(err, "failed to read build output")
	}

	root := opts.ProjectRoot
	if root == "" {
		root = cwd
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}

	artifact, err := a.artifacts.Interpret(lines, domain.ArtifactQuery{
		ProjectRoot: root,
		StartupName: opts.StartupName,
		OutputDirs:  settings.Artifact.OutputDirs,
	})
	if err != nil {
		return err
	}

	a.logger.Debug("artifact source: " + string(artifact.Source))
	_, _ = io.WriteString(a.out, artifact.Path+"\n")
	return nil
}

// Debugger prints the path of the debugger that Debug would start.
func (a *App) Debugger(ctx context.Context) error {
	cwd, err := a.getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}
	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	path, err := a.debuggers.Locate(ctx, settings.Debugger)
	if err != nil {
		return err
	}
	_, _ = io.WriteString(a.out, path+"\n")
	return nil
}
