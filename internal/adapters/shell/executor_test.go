package shell_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dbridge/internal/adapters/shell"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "echo line1; echo line2"},
		Dir:     t.TempDir(),
	}

	var out bytes.Buffer
	err := executor.Execute(context.Background(), cmd, &out)
	require.NoError(t, err)

	output := out.String()
	require.Contains(t, output, "line1")
	require.Contains(t, output, "line2")
}

func TestExecutor_Execute_CombinesStderr(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "echo to-stdout; echo to-stderr >&2"},
		Dir:     t.TempDir(),
	}

	var out bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), cmd, &out))

	assert.Contains(t, out.String(), "to-stdout")
	assert.Contains(t, out.String(), "to-stderr")
}

func TestExecutor_Execute_DrainsOutputBeforeReturning(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "printf part1; sleep 0.1; echo part2; echo '  App -> /x/bin/Debug/net8.0/App.dll'"},
		Dir:     t.TempDir(),
	}

	var out bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), cmd, &out))

	output := out.String()
	assert.Contains(t, output, "part1part2")
	assert.Contains(t, output, "App -> /x/bin/Debug/net8.0/App.dll")
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	executor := shell.NewExecutor()

	cmd := domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "echo $MY_TEST_VAR"},
		Dir:     t.TempDir(),
		Env:     map[string]string{"MY_TEST_VAR": "test-value-123"},
	}

	var out bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), cmd, &out))
	assert.Contains(t, out.String(), "test-value-123")
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	executor := shell.NewExecutor()
	dir := t.TempDir()

	var out bytes.Buffer
	require.NoError(t, executor.Execute(context.Background(), domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "pwd -P"},
		Dir:     dir,
	}, &out))

	// Temp dirs may sit behind a symlink, so compare the final path element.
	parts := strings.Split(dir, "/")
	assert.Contains(t, out.String(), parts[len(parts)-1])
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor()

	err := executor.Execute(context.Background(), domain.BuildCommand{
		Program: "nonexistent-command-xyz123",
		Dir:     t.TempDir(),
	}, io.Discard)
	require.Error(t, err)
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	executor := shell.NewExecutor()

	var out bytes.Buffer
	err := executor.Execute(context.Background(), domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "echo 'error CS1002: ; expected'; exit 42"},
		Dir:     t.TempDir(),
	}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
	assert.Contains(t, out.String(), "error CS1002", "output is captured before the failure is reported")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 42, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_Cancelled(t *testing.T) {
	executor := shell.NewExecutor()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := executor.Execute(ctx, domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "sleep 10"},
		Dir:     t.TempDir(),
	}, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor()

	err := executor.Execute(context.Background(), domain.BuildCommand{}, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	executor := shell.NewExecutor()

	err := executor.Execute(context.Background(), domain.BuildCommand{
		Program: "/bin/sh",
		Args:    []string{"-c", "echo test"},
		Dir:     t.TempDir(),
	}, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_StreamsANSI(t *testing.T) {
	executor := shell.NewExecutor()

	ansiRed := "\033[31m"
	ansiReset := "\033[0m"
	msg := "Hello Red World"

	var out bytes.Buffer
	err := executor.Execute(context.Background(), domain.BuildCommand{
		Program: "sh",
		Args:    []string{"-c", "printf '" + ansiRed + msg + ansiReset + "'"},
		Dir:     t.TempDir(),
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), ansiRed)
	assert.Contains(t, out.String(), msg)
}
