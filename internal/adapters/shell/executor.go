// Package shell runs build commands in a pseudo-terminal.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/creack/pty"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// ptyCols is wide enough that the build tool never wraps the artifact lines.
	ptyCols = 4096
	ptyRows = 50
	// drainTimeout bounds the wait for output once the process exited.
	// Background build servers may inherit the terminal and keep it open.
	drainTimeout = 2 * time.Second
)

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

// Wait waits for the process to exit and for its output to be drained.
func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()

	select {
	case <-p.ioDone:
	case <-time.After(drainTimeout):
		_ = p.ptmx.Close()
		<-p.ioDone
	}
	return err
}

// Executor implements ports.Executor using os/exec and pty.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

func start(ctx context.Context, command domain.BuildCommand, out io.Writer) (*ptyProcess, error) {
	cmdEnv := resolveEnvironment(os.Environ(), command.Env)

	executable := command.Program
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, command.Args...) //nolint:gosec // user provided command
	cmd.Args[0] = command.Program
	cmd.Dir = command.Dir
	cmd.Env = cmdEnv
	cmd.Cancel = func() error { return killProcessGroup(cmd) }

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: ptyRows, Cols: ptyCols})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start pty"), "program", command.Program)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// The pty merges stdout and stderr. Reading returns EIO once the child side closes.
		_, _ = io.Copy(out, ptmx)
	}()

	return &ptyProcess{cmd: cmd, ptmx: ptmx, ioDone: ioDone}, nil
}

// Execute runs the command and waits for it to exit and for all of its output to reach out.
func (e *Executor) Execute(ctx context.Context, command domain.BuildCommand, out io.Writer) error {
	if command.Program == "" {
		return nil
	}

	proc, err := start(ctx, command, out)
	if err != nil {
		return err
	}

	if err := proc.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.With(zerr.Wrap(ctxErr, "command cancelled"), "exit_code", exitCode)
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// allowListedEnvVars are the system environment variables inherited by the build.
var allowListedEnvVars = map[string]struct{}{
	"HOME":          {},
	"TERM":          {},
	"USER":          {},
	"PATH":          {},
	"TMPDIR":        {},
	"LANG":          {},
	"HTTP_PROXY":    {},
	"HTTPS_PROXY":   {},
	"NO_PROXY":      {},
	"http_proxy":    {},
	"https_proxy":   {},
	"no_proxy":      {},
	"SSL_CERT_FILE": {},
	"SSL_CERT_DIR":  {},
}

// allowListedEnvPrefixes select the build tool's own settings and the user's base directories.
var allowListedEnvPrefixes = []string{"DOTNET_", "NUGET_", "MSBUILD", "XDG_"}

// resolveEnvironment filters the system environment and applies the command overrides.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if allowed(k) {
			envMap[k] = v
		}
	}
	return envMap
}

func allowed(key string) bool {
	if _, ok := allowListedEnvVars[key]; ok {
		return true
	}
	for _, prefix := range allowListedEnvPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
