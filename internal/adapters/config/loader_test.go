package config_test

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dbridge/internal/adapters/config"
	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/dbridge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, files fstest.MapFS, env map[string]string) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	getenv := func(key string) string { return env[key] }
	return config.NewLoader(mockLogger, fs.NewMapFSAdapter("/repo", files), getenv), mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t, fstest.MapFS{
		"src/App/App.csproj": {Data: []byte("<Project />")},
	}, nil)

	settings, err := loader.Load(filepath.Join("/repo", "src", "App"))
	require.NoError(t, err)

	assert.Empty(t, settings.Root)
	assert.Equal(t, domain.ConsoleIntegrated, settings.Launch.Console)
	assert.False(t, settings.Launch.StopAtEntry)
	assert.Equal(t, domain.DefaultTestTokens, settings.Resolver.TestTokens)
	assert.Equal(t, domain.DefaultLibraryTokens, settings.Resolver.LibraryTokens)
	assert.Equal(t, domain.DefaultOutputDirs(), settings.Artifact.OutputDirs)
	assert.Empty(t, settings.Debugger.Path)
}

func TestLoader_Load_FullFile(t *testing.T) {
	content := `
debugger:
  path: tools/netcoredbg/netcoredbg
  args: ["--log"]
launch:
  console: externalTerminal
  stopAtEntry: true
  args: ["--urls", "http://localhost:5000"]
  env:
    ASPNETCORE_ENVIRONMENT: Development
build:
  configuration: Debug
  framework: net8.0
  noRestore: true
  extraArgs: ["/p:Foo=bar"]
resolver:
  startupProject: WebApp
  testTokens: ["Check"]
  libraryTokens: []
artifact:
  outputDirs: ["out"]
`
	loader, _ := newLoader(t, fstest.MapFS{
		domain.ConfigFileName: {Data: []byte(content)},
		"src/App/App.csproj":  {Data: []byte("<Project />")},
	}, nil)

	settings, err := loader.Load(filepath.Join("/repo", "src", "App"))
	require.NoError(t, err)

	assert.Equal(t, "/repo", settings.Root)
	assert.Equal(t, filepath.Join("/repo", "tools", "netcoredbg", "netcoredbg"), settings.Debugger.Path)
	assert.Equal(t, []string{"--log"}, settings.Debugger.Args)

	assert.Equal(t, domain.ConsoleExternal, settings.Launch.Console)
	assert.True(t, settings.Launch.StopAtEntry)
	assert.Equal(t, []string{"--urls", "http://localhost:5000"}, settings.Launch.Args)
	assert.Equal(t, map[string]string{"ASPNETCORE_ENVIRONMENT": "Development"}, settings.Launch.Env)

	assert.Equal(t, domain.RewriteOptions{
		NoRestore:     true,
		Configuration: "Debug",
		Framework:     "net8.0",
		ExtraArgs:     []string{"/p:Foo=bar"},
	}, settings.Build)

	assert.Equal(t, "WebApp", settings.Resolver.StartupProject)
	assert.Equal(t, []string{"Check"}, settings.Resolver.TestTokens)
	assert.Empty(t, settings.Resolver.LibraryTokens)
	assert.Equal(t, []string{"out"}, settings.Artifact.OutputDirs)
}

func TestLoader_Load_NearestFileWins(t *testing.T) {
	loader, _ := newLoader(t, fstest.MapFS{
		domain.ConfigFileName:          {Data: []byte("launch:\n  stopAtEntry: false\n")},
		"src/" + domain.ConfigFileName: {Data: []byte("launch:\n  stopAtEntry: true\n")},
		"src/App/App.csproj":           {Data: []byte("<Project />")},
	}, nil)

	settings, err := loader.Load(filepath.Join("/repo", "src", "App"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/repo", "src"), settings.Root)
	assert.True(t, settings.Launch.StopAtEntry)
}

func TestLoader_Load_EnvFile(t *testing.T) {
	loader, _ := newLoader(t, fstest.MapFS{
		domain.ConfigFileName: {Data: []byte(`
launch:
  envFile: .env
  env:
    LOG_LEVEL: Debug
`)},
		".env": {Data: []byte("# local settings\nLOG_LEVEL=Information\nCONNECTION=\"Server=localhost\"\n")},
	}, nil)

	settings, err := loader.Load("/repo")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"LOG_LEVEL":  "Debug",
		"CONNECTION": "Server=localhost",
	}, settings.Launch.Env)
}

func TestLoader_Load_DebuggerEnvOverride(t *testing.T) {
	t.Run("without config file", func(t *testing.T) {
		loader, _ := newLoader(t, fstest.MapFS{}, map[string]string{config.DebuggerEnv: "/opt/netcoredbg"})

		settings, err := loader.Load("/repo")
		require.NoError(t, err)
		assert.Equal(t, "/opt/netcoredbg", settings.Debugger.Path)
	})

	t.Run("overrides configured path", func(t *testing.T) {
		loader, mockLogger := newLoader(t, fstest.MapFS{
			domain.ConfigFileName: {Data: []byte("debugger:\n  path: /usr/bin/vsdbg\n")},
		}, map[string]string{config.DebuggerEnv: "/opt/netcoredbg"})
		mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

		settings, err := loader.Load("/repo")
		require.NoError(t, err)
		assert.Equal(t, "/opt/netcoredbg", settings.Debugger.Path)
	})
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name     string
		files    fstest.MapFS
		expected error
	}{
		{
			name:     "invalid yaml",
			files:    fstest.MapFS{domain.ConfigFileName: {Data: []byte("launch: [unclosed")}},
			expected: domain.ErrConfigParseFailed,
		},
		{
			name:     "wrong type",
			files:    fstest.MapFS{domain.ConfigFileName: {Data: []byte("launch:\n  stopAtEntry: maybe\n")}},
			expected: domain.ErrConfigParseFailed,
		},
		{
			name:     "invalid console",
			files:    fstest.MapFS{domain.ConfigFileName: {Data: []byte("launch:\n  console: popup\n")}},
			expected: domain.ErrInvalidConsole,
		},
		{
			name:     "missing env file",
			files:    fstest.MapFS{domain.ConfigFileName: {Data: []byte("launch:\n  envFile: missing.env\n")}},
			expected: domain.ErrEnvFileReadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, tt.files, nil)

			_, err := loader.Load("/repo")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
