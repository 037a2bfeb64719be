package config

// File represents the structure of the dbridge.yaml configuration file.
type File struct {
	Debugger DebuggerDTO `yaml:"debugger"`
	Launch   LaunchDTO   `yaml:"launch"`
	Build    BuildDTO    `yaml:"build"`
	Resolver ResolverDTO `yaml:"resolver"`
	Artifact ArtifactDTO `yaml:"artifact"`
}

// DebuggerDTO selects the debugger executable.
type DebuggerDTO struct {
	Path    string   `yaml:"path"`
	Adapter string   `yaml:"adapter"`
	Args    []string `yaml:"args"`
}

// LaunchDTO holds the launch request defaults.
type LaunchDTO struct {
	Console     string            `yaml:"console"`
	StopAtEntry bool              `yaml:"stopAtEntry"`
	Args        []string          `yaml:"args"`
	Env         map[string]string `yaml:"env"`
	EnvFile     string            `yaml:"envFile"`
}

// BuildDTO tunes the debug build.
type BuildDTO struct {
	Configuration string   `yaml:"configuration"`
	Framework     string   `yaml:"framework"`
	NoRestore     bool     `yaml:"noRestore"`
	ExtraArgs     []string `yaml:"extraArgs"`
}

// ResolverDTO tunes startup project selection.
type ResolverDTO struct {
	StartupProject string   `yaml:"startupProject"`
	TestTokens     []string `yaml:"testTokens"`
	LibraryTokens  []string `yaml:"libraryTokens"`
}

// ArtifactDTO tunes artifact discovery.
type ArtifactDTO struct {
	OutputDirs []string `yaml:"outputDirs"`
}
