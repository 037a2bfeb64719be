package shell

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		sysEnv    []string
		overrides map[string]string
		expected  []string
	}{
		{
			name:     "System Only (Allowed)",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			expected: []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
		},
		{
			name:     "System Only (Filtered)",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key"},
			expected: []string{"USER=test"},
		},
		{
			name:     "Build Tool Settings",
			sysEnv:   []string{"DOTNET_ROOT=/usr/share/dotnet", "NUGET_PACKAGES=/cache/nuget", "MSBUILDDEBUGPATH=/tmp", "AWS_SECRET=x"},
			expected: []string{"DOTNET_ROOT=/usr/share/dotnet", "NUGET_PACKAGES=/cache/nuget", "MSBUILDDEBUGPATH=/tmp"},
		},
		{
			name: "Package Restore Network Settings",
			sysEnv: []string{
				"HTTPS_PROXY=http://proxy:3128", "http_proxy=http://proxy:3128", "NO_PROXY=localhost",
				"SSL_CERT_FILE=/etc/ssl/cert.pem", "SSL_CERT_DIR=/etc/ssl/certs",
				"XDG_CACHE_HOME=/home/test/.cache", "XDG_CONFIG_HOME=/home/test/.config",
				"PROXY_PASSWORD=hunter2",
			},
			expected: []string{
				"HTTPS_PROXY=http://proxy:3128", "http_proxy=http://proxy:3128", "NO_PROXY=localhost",
				"SSL_CERT_FILE=/etc/ssl/cert.pem", "SSL_CERT_DIR=/etc/ssl/certs",
				"XDG_CACHE_HOME=/home/test/.cache", "XDG_CONFIG_HOME=/home/test/.config",
			},
		},
		{
			name:      "Overrides",
			sysEnv:    []string{"USER=test", "PATH=/bin"},
			overrides: map[string]string{"USER": "dbridge", "MSBUILDTERMINALLOGGER": "off"},
			expected:  []string{"USER=dbridge", "PATH=/bin", "MSBUILDTERMINALLOGGER=off"},
		},
		{
			name:     "Malformed Entries",
			sysEnv:   []string{"PATH=/bin", "GARBAGE"},
			expected: []string{"PATH=/bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.overrides)

			sort.Strings(got)
			sort.Strings(tt.expected)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "dotnet")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes"), []byte("x"), 0o600))

	got, err := lookPath("dotnet", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = lookPath("notes", []string{"PATH=" + dir})
	require.Error(t, err, "non-executable files are skipped")

	_, err = lookPath("dotnet", []string{"HOME=/root"})
	require.Error(t, err, "no PATH in environment")
}
