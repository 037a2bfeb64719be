package linear_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dbridge/internal/adapters/linear"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	r := linear.NewRenderer(buf)
	require.NoError(t, r.Start(context.Background()))
	return r, buf
}

func TestRenderer_ScenarioLifecycle(t *testing.T) {
	r, buf := newRenderer(t)

	r.OnPlanEmit([]string{"resolve", "build", "interpret", "debug"})
	r.OnPhaseStart("root", "", "scenario", epoch)

	r.OnPhaseStart("s1", "root", "resolve", epoch)
	r.OnPhaseComplete("s1", epoch.Add(3*time.Millisecond), nil)

	r.OnPhaseStart("s2", "root", "build", epoch)
	r.OnPhaseLog("s2", []byte("  Determining projects to restore...\r\n"))
	r.OnPhaseLog("s2", []byte("  WebApp.Core -> /src/WebApp.Core/bin/Debug/net8.0/WebApp.Core.dll\n  Web"))
	r.OnPhaseLog("s2", []byte("App -> /src/WebApp/bin/Debug/net8.0/WebApp.dll\n\n"))
	r.OnPhaseComplete("s2", epoch.Add(2345678*time.Microsecond), nil)

	r.OnPhaseStart("s3", "root", "interpret", epoch)
	r.OnPhaseComplete("s3", epoch.Add(time.Millisecond), nil)

	r.OnPhaseComplete("root", epoch.Add(3*time.Second), nil)
	require.NoError(t, r.Stop())

	g := goldie.New(t)
	g.Assert(t, "scenario_lifecycle", buf.Bytes())
}

func TestRenderer_Failure(t *testing.T) {
	r, buf := newRenderer(t)

	r.OnPlanEmit([]string{"resolve", "build"})
	r.OnPhaseStart("s1", "", "build", epoch)
	r.OnPhaseLog("s1", []byte("Program.cs(3,1): error CS1002: ; expected"))
	r.OnPhaseComplete("s1", epoch.Add(1500*time.Millisecond), errors.New("build failed"))

	g := goldie.New(t)
	g.Assert(t, "build_failure", buf.Bytes())
}

func TestRenderer_WithoutPlan(t *testing.T) {
	r, buf := newRenderer(t)

	r.OnPhaseStart("s1", "", "locate", epoch)
	r.OnPhaseLog("s1", []byte("line\n"))
	r.OnPhaseComplete("s1", epoch.Add(time.Second), nil)

	assert.Equal(t, "[locate] started\n[locate] line\n[locate] ✓ done in 1s\n", buf.String())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, buf := newRenderer(t)

	r.OnPhaseStart("s1", "", "build", epoch)
	buf.Reset()

	r.OnPhaseLog("s1", []byte("partial"))
	assert.Empty(t, buf.String(), "partial line should not be printed immediately")

	r.OnPhaseLog("s1", []byte(" line\n"))
	assert.Equal(t, "[build] partial line\n", buf.String())

	r.OnPhaseLog("s1", []byte("tail"))
	require.NoError(t, r.Stop())
	assert.Equal(t, "[build] partial line\n[build] tail\n", buf.String())
}

func TestRenderer_UnknownSpan(t *testing.T) {
	r, buf := newRenderer(t)

	r.OnPhaseLog("missing", []byte("data\n"))
	r.OnPhaseComplete("missing", epoch, nil)

	assert.Empty(t, buf.String())
}

func TestRenderer_ANSIColors(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	buf := &bytes.Buffer{}
	r := linear.NewRenderer(buf)
	r.OnPhaseStart("s1", "", "build", epoch)
	r.OnPhaseComplete("s1", epoch, nil)

	assert.True(t, strings.Contains(buf.String(), "\x1b["), "expected ANSI sequences in %q", buf.String())
}
