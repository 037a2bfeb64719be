package dap

import (
	"context"
	"io"
	"os/exec"
	"strconv"
	"time"

	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/dbridge/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// interpreterFlag switches netcoredbg and vsdbg to the protocol on stdio.
	interpreterFlag = "--interpreter=vscode"
	// shutdownTimeout bounds the wait for the adapter to exit after the session ended.
	shutdownTimeout = 5 * time.Second
)

// Session implements ports.DebugSession by running the debug adapter as a child process.
type Session struct {
	locator  ports.DebuggerLocator
	settings domain.DebuggerSettings
	out      io.Writer
	logger   ports.Logger
}

// NewSession creates a Session that starts the debugger chosen by settings.
// Program output and adapter diagnostics are written to out.
func NewSession(locator ports.DebuggerLocator, settings domain.DebuggerSettings, out io.Writer, logger ports.Logger) *Session {
	return &Session{
		locator:  locator,
		settings: settings,
		out:      out,
		logger:   logger,
	}
}

// Start locates the debugger, runs the session for req and blocks until it ends.
func (s *Session) Start(ctx context.Context, req *domain.LaunchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	path, err := s.locator.Locate(ctx, s.settings)
	if err != nil {
		return err
	}

	args := append([]string{interpreterFlag}, s.settings.Args...)
	cmd := exec.CommandContext(ctx, path, args...) //nolint:gosec // debugger path is discovered or configured by the user
	cmd.Dir = req.Cwd
	cmd.Stderr = s.out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open debugger stdin")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open debugger stdout")
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSessionFailed, err.Error()), "debugger", path)
	}
	s.logger.Info("debugger started: " + path)

	client := NewClient(stdout, stdin, s.out)
	runErr := client.Run(ctx, req)

	_ = stdin.Close()
	timer := time.AfterFunc(shutdownTimeout, func() { _ = cmd.Process.Kill() })
	waitErr := cmd.Wait()
	timer.Stop()

	if runErr != nil {
		return zerr.With(runErr, "debugger", path)
	}
	if waitErr != nil && ctx.Err() == nil {
		s.logger.Warn("debugger exited: " + waitErr.Error())
	}
	if code := client.ExitCode(); code != 0 {
		s.logger.Warn("program exited with code " + strconv.Itoa(code))
	}
	return nil
}
