// Package scenario turns a declared build command into a running debug session.
package scenario

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/dbridge/internal/core/ports"
	"go.trai.ch/dbridge/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Phase names, in the order a scenario runs them.
const (
	PhaseResolve   = "resolve"
	PhaseBuild     = "build"
	PhaseInterpret = "interpret"
	PhaseDebug     = "debug"
)

// Phases lists the phases of a scenario in order.
var Phases = []string{PhaseResolve, PhaseBuild, PhaseInterpret, PhaseDebug}

const maxLineSize = 1024 * 1024

// Builder runs the build-to-debug state machine:
// Idle, Resolving, Building, Interpreting, then Ready or Failed.
//
// A Builder keeps no state between runs; each Run owns its solution, artifact and launch request.
type Builder struct {
	loader    ports.SolutionLoader
	resolver  *resolver.Resolver
	executor  ports.Executor
	artifacts ports.ArtifactLocator
	session   ports.DebugSession
	tracer    ports.Tracer
	logger    ports.Logger
}

// NewBuilder creates a Builder handing launch requests to session.
func NewBuilder(
	loader ports.SolutionLoader,
	res *resolver.Resolver,
	executor ports.Executor,
	artifacts ports.ArtifactLocator,
	session ports.DebugSession,
	tracer ports.Tracer,
	logger ports.Logger,
) *Builder {
	return &Builder{
		loader:    loader,
		resolver:  res,
		executor:  executor,
		artifacts: artifacts,
		session:   session,
		tracer:    tracer,
		logger:    logger,
	}
}

// Run builds the program described by req and starts the debug session.
// It blocks until the session ends. A failure is reported as a *domain.ScenarioError
// naming the state the scenario stopped in.
func (b *Builder) Run(ctx context.Context, req domain.DebugRequest) (*domain.Scenario, error) {
	r := &run{b: b, req: req, state: domain.StateIdle}

	// The plan goes out first so that renderers hide the enclosing span.
	b.tracer.EmitPlan(ctx, Phases)
	ctx, span := b.tracer.Start(ctx, "scenario")
	defer span.End()
	span.SetAttribute("phases", Phases)

	if err := r.execute(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &r.scenario, nil
}

// run is the state of one scenario attempt.
type run struct {
	b        *Builder
	req      domain.DebugRequest
	state    domain.ScenarioState
	scenario domain.Scenario
}

func (r *run) execute(ctx context.Context) error {
	r.transition(domain.StateResolving)
	if err := r.phase(ctx, PhaseResolve, r.resolve); err != nil {
		return r.fail(err)
	}

	r.transition(domain.StateBuilding)
	var lines []string
	err := r.phase(ctx, PhaseBuild, func(ctx context.Context, span ports.Span) error {
		var err error
		lines, err = r.build(ctx, span)
		return err
	}, r.buildSpanOptions()...)
	if err != nil {
		return r.fail(err)
	}

	r.transition(domain.StateInterpreting)
	err = r.phase(ctx, PhaseInterpret, func(_ context.Context, span ports.Span) error {
		return r.interpret(lines, span)
	})
	if err != nil {
		return r.fail(err)
	}

	r.scenario.Launch = r.launchRequest()
	if err := r.scenario.Launch.Validate(); err != nil {
		return r.fail(err)
	}

	r.transition(domain.StateLaunching)
	err = r.phase(ctx, PhaseDebug, func(ctx context.Context, span ports.Span) error {
		span.SetAttribute("program", r.scenario.Launch.Program)
		return r.b.session.Start(ctx, r.scenario.Launch)
	})
	if err != nil {
		return r.fail(err)
	}
	r.transition(domain.StateReady)
	return nil
}

func (r *run) transition(to domain.ScenarioState) {
	r.b.logger.Debug(fmt.Sprintf("scenario: %s -> %s", r.state, to))
	r.state = to
}

func (r *run) fail(err error) error {
	failed := r.state
	r.transition(domain.StateFailed)
	return &domain.ScenarioError{State: failed, Cause: err}
}

func (r *run) phase(
	ctx context.Context,
	name string,
	fn func(context.Context, ports.Span) error,
	opts ...ports.SpanOption,
) error {
	ctx, span := r.b.tracer.Start(ctx, name, opts...)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (r *run) buildSpanOptions() []ports.SpanOption {
	if r.req.StreamBuild {
		return nil
	}
	return []ports.SpanOption{ports.WithQuiet()}
}

// resolve rewrites the command, detects the build target and picks the startup project.
func (r *run) resolve(_ context.Context, span ports.Span) error {
	build, err := domain.RewriteForDebug(r.req.Command, r.req.Rewrite)
	if err != nil {
		return err
	}
	r.scenario.Build = build
	if build.Intercepted {
		r.b.logger.Debug("run rewritten as: " + build.Command.String())
	}

	target, err := r.detectTarget(build)
	if err != nil {
		return err
	}

	if domain.IsProjectFile(target) {
		r.standalone(target)
	} else if err := r.fromSolution(target); err != nil {
		return err
	}

	span.SetAttribute("target", target)
	span.SetAttribute("startup", r.scenario.Startup.Name)
	span.SetAttribute("rule", string(r.scenario.Resolution.Rule))
	return nil
}

// detectTarget returns the solution or project file the build works on.
// Without a target on the command line, a project file in the working directory wins
// over the nearest solution, and the build runs in the directory of what was found.
func (r *run) detectTarget(build domain.DebugBuild) (string, error) {
	dir := build.Command.Dir
	if build.Target != "" {
		target := build.Target
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		if domain.IsSolutionFile(target) || domain.IsProjectFile(target) {
			return target, nil
		}
		// run --project accepts a directory.
		return r.targetIn(target, false)
	}
	return r.targetIn(dir, true)
}

func (r *run) targetIn(dir string, moveBuild bool) (string, error) {
	project, err := r.b.loader.FindProject(dir)
	if err != nil {
		return "", err
	}
	if project != "" {
		return project, nil
	}

	sol, err := r.b.loader.Discover(dir)
	if err != nil {
		return "", err
	}
	if moveBuild && filepath.Dir(sol) != filepath.Clean(dir) {
		r.scenario.Build.Command.Dir = filepath.Dir(sol)
		r.b.logger.Debug("building in " + filepath.Dir(sol))
	}
	return sol, nil
}

// standalone makes the project file itself the startup project.
func (r *run) standalone(path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	startup := domain.ProjectDescriptor{
		Name:         name,
		RelativePath: filepath.Base(path),
		KindTag:      domain.CSharpProjectKind,
	}

	r.scenario.Solution = &domain.Solution{
		BaseDir:        filepath.Dir(path),
		Projects:       []domain.ProjectDescriptor{startup},
		Configurations: []string{"Debug", "Release"},
	}
	r.scenario.Startup = startup
	r.scenario.Resolution = domain.Resolution{Rule: domain.RuleStandalone, Candidates: []string{name}}

	info, err := r.b.loader.Inspect(path)
	if err != nil {
		r.b.logger.Debug("could not inspect " + path + ": " + err.Error())
		return
	}
	if kind, known := info.Kind(); known && kind != domain.KindExecutable {
		r.b.logger.Warn(fmt.Sprintf("%s looks like a %s project, the build may not produce a runnable program", name, kind))
	}
}

func (r *run) fromSolution(path string) error {
	sol, warnings, err := r.b.loader.Load(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		r.b.logger.Warn(fmt.Sprintf("%s:%d: skipped project entry: %s", filepath.Base(path), w.Line, w.Reason))
	}
	r.scenario.Solution = sol

	classify := r.req.Classifier
	if classify == nil {
		classify = domain.DefaultClassifier()
	}
	res := r.b.resolver.WithClassifier(classify.Refine(r.inspectAll(sol)))

	var startup *domain.ProjectDescriptor
	var resolution domain.Resolution
	if r.req.StartupProject != "" {
		startup, resolution, err = res.ResolveOverride(sol, r.req.StartupProject)
		if err != nil {
			return zerr.With(err, "solution", path)
		}
	} else {
		startup, resolution = res.ResolveStartup(sol)
		if startup == nil {
			return zerr.With(zerr.Wrap(domain.ErrNoStartupProject, "the solution declares no projects"), "solution", path)
		}
	}

	if resolution.Ambiguous {
		r.b.logger.Info(fmt.Sprintf("several projects could be debugged (%s), using %s; pick another with --startup",
			strings.Join(resolution.Candidates, ", "), startup.Name))
	}
	r.b.logger.Debug(fmt.Sprintf("startup project %s chosen by rule %s", startup.Name, resolution.Rule))

	r.scenario.Startup = *startup
	r.scenario.Resolution = resolution
	return nil
}

// inspectAll reads the project files of sol. Unreadable project files are skipped.
func (r *run) inspectAll(sol *domain.Solution) map[string]domain.ProjectInfo {
	infos := make(map[string]domain.ProjectInfo, len(sol.Projects))
	for _, p := range sol.Projects {
		if !domain.IsProjectFile(p.RelativePath) {
			continue
		}
		if _, seen := infos[p.Name]; seen {
			continue
		}
		info, err := r.b.loader.Inspect(sol.ProjectFile(p))
		if err != nil {
			r.b.logger.Debug("skipping project metadata: " + err.Error())
			continue
		}
		infos[p.Name] = info
	}
	return infos
}

// build runs the build and collects its output lines once the process exited
// and its output was fully drained.
func (r *run) build(ctx context.Context, span ports.Span) ([]string, error) {
	cmd := r.scenario.Build.Command
	span.SetAttribute("command", cmd.String())

	pr, pw := io.Pipe()
	var captured bytes.Buffer
	var lines []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := r.b.executor.Execute(gctx, cmd, pw)
		_ = pw.CloseWithError(err)
		return err
	})
	g.Go(func() error {
		tee := io.TeeReader(pr, io.MultiWriter(&captured, span))
		scanner := bufio.NewScanner(tee)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		// Keep draining so the build never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, tee)
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, zerr.Wrap(ctxErr, "build cancelled")
		}
		return nil, buildFailure(cmd, err, captured.String())
	}
	return lines, nil
}

func buildFailure(cmd domain.BuildCommand, err error, output string) error {
	exitCode := -1
	var z interface{ Metadata() map[string]any }
	if errors.As(err, &z) {
		if code, ok := z.Metadata()["exit_code"].(int); ok {
			exitCode = code
		}
	}

	detail := err.Error()
	if exitCode >= 0 {
		detail = fmt.Sprintf("%s exited with code %d", filepath.Base(cmd.Program), exitCode)
	}
	cause := zerr.With(zerr.Wrap(domain.ErrBuildFailed, detail), "command", cmd.String())
	return &domain.BuildFailure{ExitCode: exitCode, Output: output, Cause: cause}
}

func (r *run) interpret(lines []string, span ports.Span) error {
	outputDirs := r.req.OutputDirs
	if len(outputDirs) == 0 {
		outputDirs = domain.DefaultOutputDirs()
	}

	artifact, err := r.b.artifacts.Interpret(lines, domain.ArtifactQuery{
		ProjectRoot: r.scenario.Solution.ProjectDir(r.scenario.Startup),
		StartupName: r.scenario.Startup.Name,
		OutputDirs:  outputDirs,
	})
	if err != nil {
		return zerr.With(err, "project", r.scenario.Startup.Name)
	}

	r.scenario.Artifact = *artifact
	span.SetAttribute("artifact", artifact.Path)
	span.SetAttribute("source", string(artifact.Source))
	if artifact.Source == domain.SourceFallback {
		r.b.logger.Info("build output named no artifact, using " + artifact.Path)
	}
	return nil
}

func (r *run) launchRequest() *domain.LaunchRequest {
	startup := r.scenario.Startup
	req := domain.NewLaunchRequest(
		".NET Launch ("+startup.Name+")",
		r.scenario.Artifact.Path,
		r.scenario.Solution.ProjectDir(startup),
	)

	req.Args = r.scenario.Build.ProgramArgs
	if len(req.Args) == 0 {
		req.Args = r.req.Args
	}
	if len(r.req.Env) > 0 {
		req.Env = r.req.Env
	}
	if r.req.Console != "" {
		req.Console = r.req.Console
	}
	req.StopAtEntry = r.req.StopAtEntry
	return req
}
