package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
)

func newSolution() *domain.Solution {
	return &domain.Solution{
		BaseDir: "/repo",
		Projects: []domain.ProjectDescriptor{
			{Name: "App", RelativePath: filepath.Join("src", "App", "App.csproj"), Identity: "AAA"},
			{Name: "Lib", RelativePath: filepath.Join("src", "Lib", "Lib.csproj"), Identity: "BBB"},
			{Name: "App", RelativePath: filepath.Join("legacy", "App.csproj"), Identity: "CCC"},
		},
	}
}

func TestSolution_Lookups(t *testing.T) {
	sol := newSolution()

	p, ok := sol.ProjectByName("App")
	require.True(t, ok)
	assert.Equal(t, "AAA", p.Identity, "first match wins")

	p, ok = sol.ProjectByIdentity("CCC")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("legacy", "App.csproj"), p.RelativePath)

	_, ok = sol.ProjectByName("Missing")
	assert.False(t, ok)

	_, ok = sol.ProjectByIdentity("aaa")
	assert.False(t, ok, "identity lookups are exact")
}

func TestSolution_ProjectPaths(t *testing.T) {
	sol := newSolution()

	assert.Equal(t, filepath.Join("/repo", "src", "App", "App.csproj"), sol.ProjectFile(sol.Projects[0]))
	assert.Equal(t, filepath.Join("/repo", "src", "App"), sol.ProjectDir(sol.Projects[0]))
}

func TestSameIdentity(t *testing.T) {
	assert.True(t, domain.SameIdentity("{ABC-1}", "abc-1"))
	assert.False(t, domain.SameIdentity("", ""))
	assert.False(t, domain.SameIdentity("ABC", "ABD"))
}

func TestLayout(t *testing.T) {
	assert.True(t, domain.IsProjectFile("App.CSPROJ"))
	assert.True(t, domain.IsSolutionFile("All.slnx"))
	assert.True(t, domain.IsArtifactFile("App.Dll"))
	assert.False(t, domain.IsArtifactFile("App.pdb"))
	assert.Equal(t, filepath.Join("/cache", "dbridge", "debug_adapters"), domain.DefaultAdaptersPath("/cache"))
	assert.Equal(t, []string{"bin/Debug", "bin/Release"}, domain.DefaultOutputDirs())
}

func TestScenarioError(t *testing.T) {
	err := &domain.ScenarioError{State: domain.StateBuilding, Cause: domain.ErrBuildFailed}

	assert.Equal(t, "failed while building: build failed", err.Error())
	assert.ErrorIs(t, err, domain.ErrBuildFailed)

	var scenarioErr *domain.ScenarioError
	require.True(t, errors.As(error(err), &scenarioErr))
	assert.Equal(t, domain.StateBuilding, scenarioErr.State)

	debugging := &domain.ScenarioError{State: domain.StateLaunching, Cause: domain.ErrSessionFailed}
	assert.Equal(t, "failed while debugging: debug session failed", debugging.Error())
}

func TestBuildFailure(t *testing.T) {
	cause := zerr.Wrap(domain.ErrBuildFailed, "dotnet exited with code 1")
	err := &domain.BuildFailure{ExitCode: 1, Output: "error CS1002\n", Cause: cause}

	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.Equal(t, cause.Error(), err.Error())
}

func TestScenarioState_String(t *testing.T) {
	states := map[domain.ScenarioState]string{
		domain.StateIdle:         "idle",
		domain.StateResolving:    "resolving",
		domain.StateBuilding:     "building",
		domain.StateInterpreting: "interpreting",
		domain.StateLaunching:    "launching",
		domain.StateReady:        "ready",
		domain.StateFailed:       "failed",
	}
	for state, want := range states {
		assert.Equal(t, want, state.String())
	}
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()

	assert.Equal(t, domain.ConsoleIntegrated, s.Launch.Console)
	assert.Equal(t, domain.DefaultOutputDirs(), s.Artifact.OutputDirs)
	assert.Equal(t, domain.KindTest, s.Classifier()("App.Tests", ""))
}
