// Package config provides the configuration loader for dbridge.
package config

import (
	"maps"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/dbridge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DebuggerEnv names the environment variable that overrides debugger.path.
const DebuggerEnv = "DBRIDGE_DEBUGGER"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	fs     fs.FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader reading through fsys. getenv is consulted for overrides.
func NewLoader(logger ports.Logger, fsys fs.FileSystem, getenv func(string) string) *Loader {
	return &Loader{Logger: logger, fs: fsys, getenv: getenv}
}

// Load walks up from cwd looking for dbridge.yaml and returns the resolved settings.
// Defaults are returned when no file exists.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	if configPath, ok := l.findConfiguration(cwd); ok {
		var file File
		if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, err
		}
		if err := l.apply(settings, &file, filepath.Dir(configPath)); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
	}

	if override := l.env(DebuggerEnv); override != "" {
		if settings.Debugger.Path != "" {
			l.Logger.Warn(DebuggerEnv + " overrides debugger.path from " + domain.ConfigFileName)
		}
		settings.Debugger.Path = override
	}

	return settings, nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := filepath.Clean(cwd)
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := l.fs.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) apply(s *domain.Settings, file *File, configDir string) error {
	s.Root = configDir

	s.Debugger = domain.DebuggerSettings{
		Path:    resolvePath(configDir, file.Debugger.Path),
		Adapter: file.Debugger.Adapter,
		Args:    file.Debugger.Args,
	}

	console, err := domain.ParseConsole(file.Launch.Console)
	if err != nil {
		return err
	}
	s.Launch.Console = console
	s.Launch.StopAtEntry = file.Launch.StopAtEntry
	s.Launch.Args = file.Launch.Args

	env := make(map[string]string)
	if file.Launch.EnvFile != "" {
		fromFile, err := l.readEnvFile(resolvePath(configDir, file.Launch.EnvFile))
		if err != nil {
			return err
		}
		maps.Copy(env, fromFile)
	}
	maps.Copy(env, file.Launch.Env)
	s.Launch.Env = env

	s.Build = domain.RewriteOptions{
		NoRestore:     file.Build.NoRestore,
		Configuration: file.Build.Configuration,
		Framework:     file.Build.Framework,
		ExtraArgs:     file.Build.ExtraArgs,
	}

	s.Resolver.StartupProject = file.Resolver.StartupProject
	if file.Resolver.TestTokens != nil {
		s.Resolver.TestTokens = file.Resolver.TestTokens
	}
	if file.Resolver.LibraryTokens != nil {
		s.Resolver.LibraryTokens = file.Resolver.LibraryTokens
	}

	if len(file.Artifact.OutputDirs) > 0 {
		s.Artifact.OutputDirs = file.Artifact.OutputDirs
	}
	return nil
}

func (l *Loader) readEnvFile(path string) (map[string]string, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvFileReadFailed, err.Error()), "env_file", path)
	}
	env, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvFileReadFailed, err.Error()), "env_file", path)
	}
	return env, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	data, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error()), "path", configPath)
	}

	return nil
}

func (l *Loader) env(key string) string {
	if l.getenv == nil {
		return ""
	}
	return l.getenv(key)
}

// resolvePath makes a configured path absolute relative to the configuration directory.
func resolvePath(configDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(configDir, p))
}
