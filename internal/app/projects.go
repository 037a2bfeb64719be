package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/dbridge/internal/engine/resolver"
	"go.trai.ch/dbridge/internal/ui/output"
	"go.trai.ch/dbridge/internal/ui/style"
	"go.trai.ch/zerr"
)

const maxLineSize = 1024 * 1024

// ProjectsOptions configures the Projects and Startup methods.
type ProjectsOptions struct {
	// Path is a solution file or a directory to search from. Empty means the working directory.
	Path string
}

// solutionView is a loaded solution with its classification and startup project.
type solutionView struct {
	solution   *domain.Solution
	infos      map[string]domain.ProjectInfo
	resolver   *resolver.Resolver
	startup    *domain.ProjectDescriptor
	resolution domain.Resolution
}

func (a *App) viewSolution(opts ProjectsOptions) (*solutionView, error) {
	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	settings, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	path := opts.Path
	if path == "" {
		path = cwd
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	if !domain.IsSolutionFile(path) {
		if path, err = a.solutions.Discover(path); err != nil {
			return nil, err
		}
	}

	sol, warnings, err := a.solutions.Load(path)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.logger.Warn(fmt.Sprintf("%s:%d: skipped project entry: %s", filepath.Base(path), w.Line, w.Reason))
	}

	infos := make(map[string]domain.ProjectInfo, len(sol.Projects))
	for _, p := range sol.Projects {
		if !domain.IsProjectFile(p.RelativePath) {
			continue
		}
		if info, err := a.solutions.Inspect(sol.ProjectFile(p)); err == nil {
			infos[p.Name] = info
		}
	}

	view := &solutionView{
		solution: sol,
		infos:    infos,
		resolver: a.resolver.WithClassifier(settings.Classifier().Refine(infos)),
	}
	if name := settings.Resolver.StartupProject; name != "" {
		view.startup, view.resolution, err = view.resolver.ResolveOverride(sol, name)
		if err != nil {
			return nil, err
		}
	} else {
		view.startup, view.resolution = view.resolver.ResolveStartup(sol)
	}
	return view, nil
}

// Projects prints the projects of a solution with their kind, target frameworks and path,
// marking the startup project.
func (a *App) Projects(_ context.Context, opts ProjectsOptions) error {
	view, err := a.viewSolution(opts)
	if err != nil {
		return err
	}

	r := output.NewRenderer(a.out)
	rows := make([][]string, 0, len(view.solution.Projects))
	startupRow := -1
	for i, p := range view.solution.Projects {
		marker := style.Circle
		if view.startup != nil && view.startup.Identity == p.Identity && view.startup.Name == p.Name {
			marker = style.Dot
			startupRow = i
		}
		rows = append(rows, []string{
			marker,
			p.Name,
			view.resolver.Kind(p).String(),
			strings.Join(view.infos[p.Name].TargetFrameworks, ";"),
			filepath.ToSlash(p.RelativePath),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(style.Muted(r)).
		Headers("", "PROJECT", "KIND", "FRAMEWORKS", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := r.NewStyle().PaddingRight(2)
			switch {
			case row == table.HeaderRow:
				return style.Header(r).PaddingRight(2)
			case row == startupRow && col == 1:
				return style.Startup(r).PaddingRight(2)
			case col == 2 && row >= 0 && row < len(rows):
				return style.Kind(r, rows[row][2]).PaddingRight(2)
			case col == 4:
				return style.Muted(r)
			}
			return s
		})

	_, _ = fmt.Fprintln(a.out, t.Render())
	if view.startup != nil {
		_, _ = fmt.Fprintf(a.out, "\n%s startup: %s (%s)\n", style.Arrow, view.startup.Name, view.resolution.Rule)
	}
	return nil
}

// Startup prints the name of the project Debug would start.
func (a *App) Startup(_ context.Context, opts ProjectsOptions) error {
	view, err := a.viewSolution(opts)
	if err != nil {
		return err
	}
	if view.startup == nil {
		return zerr.With(zerr.Wrap(domain.ErrNoStartupProject, "the solution declares no projects"),
			"solution", view.solution.Path)
	}

	if view.resolution.Ambiguous {
		a.logger.Info(fmt.Sprintf("several projects could be debugged: %s",
			strings.Join(view.resolution.Candidates, ", ")))
	}
	a.logger.Debug("chosen by rule " + string(view.resolution.Rule))
	_, _ = fmt.Fprintln(a.out, view.startup.Name)
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
