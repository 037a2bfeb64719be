package domain

// Settings is the resolved project configuration.
type Settings struct {
	// Root is the directory the configuration was loaded from, empty when defaults are used.
	Root     string
	Debugger DebuggerSettings
	Launch   LaunchSettings
	Build    RewriteOptions
	Resolver ResolverSettings
	Artifact ArtifactSettings
}

// DebuggerSettings selects the debugger executable.
type DebuggerSettings struct {
	// Path is an explicit debugger executable. It bypasses discovery.
	Path string
	// Adapter restricts discovery to one known debugger, e.g. "netcoredbg".
	Adapter string
	// Args are passed to the debugger after the protocol flag.
	Args []string
}

// LaunchSettings are defaults applied to every launch request.
type LaunchSettings struct {
	Console     ConsoleKind
	StopAtEntry bool
	Args        []string
	Env         map[string]string
}

// ResolverSettings tunes startup project selection.
type ResolverSettings struct {
	StartupProject string
	TestTokens     []string
	LibraryTokens  []string
}

// ArtifactSettings tunes artifact discovery.
type ArtifactSettings struct {
	OutputDirs []string
}

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Launch: LaunchSettings{
			Console: ConsoleIntegrated,
			Env:     map[string]string{},
		},
		Resolver: ResolverSettings{
			TestTokens:    DefaultTestTokens,
			LibraryTokens: DefaultLibraryTokens,
		},
		Artifact: ArtifactSettings{
			OutputDirs: DefaultOutputDirs(),
		},
	}
}

// Classifier builds the project classifier described by the resolver settings.
func (s *Settings) Classifier() Classifier {
	return NewClassifier(s.Resolver.TestTokens, s.Resolver.LibraryTokens)
}
