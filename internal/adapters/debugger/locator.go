// Package debugger finds the .NET debug adapter executable.
package debugger

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// KnownAdapters are the debuggers dbridge can drive, in discovery order.
var KnownAdapters = []string{"netcoredbg", "vsdbg"}

// Locator implements ports.DebuggerLocator.
//
// Discovery results are shared by every caller: the first successful lookup
// for an adapter selection is stored and never replaced. Failed lookups are
// not stored, so a debugger installed later is found on the next call.
// Concurrent lookups for the same selection run once.
type Locator struct {
	fs        fs.FileSystem
	pathEnv   string
	cacheRoot string

	group singleflight.Group
	mu    sync.RWMutex
	found map[string]string
}

// NewLocator creates a Locator searching the directories in pathEnv
// and the adapters directory below cacheRoot.
func NewLocator(fsys fs.FileSystem, pathEnv, cacheRoot string) *Locator {
	return &Locator{
		fs:        fsys,
		pathEnv:   pathEnv,
		cacheRoot: cacheRoot,
		found:     make(map[string]string),
	}
}

// Locate returns the debugger executable selected by settings.
// An explicit path is checked but never cached.
func (l *Locator) Locate(ctx context.Context, settings domain.DebuggerSettings) (string, error) {
	if settings.Path != "" {
		return l.explicit(settings.Path)
	}

	adapters := KnownAdapters
	if settings.Adapter != "" {
		if !slices.Contains(KnownAdapters, settings.Adapter) {
			return "", zerr.With(zerr.Wrap(domain.ErrDebuggerUnavailable, "unknown debug adapter"),
				"adapter", settings.Adapter)
		}
		adapters = []string{settings.Adapter}
	}
	key := settings.Adapter

	l.mu.RLock()
	path, ok := l.found[key]
	l.mu.RUnlock()
	if ok {
		return path, nil
	}

	ch := l.group.DoChan(key, func() (any, error) {
		path, err := l.discover(adapters)
		if err != nil {
			return "", err
		}
		l.mu.Lock()
		if existing, ok := l.found[key]; ok {
			path = existing
		} else {
			l.found[key] = path
		}
		l.mu.Unlock()
		return path, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (l *Locator) explicit(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrDebuggerUnavailable, err.Error()), "path", path)
	}
	if !l.isExecutable(abs) {
		return "", zerr.With(zerr.Wrap(domain.ErrDebuggerUnavailable, "configured debugger is not an executable file"),
			"path", abs)
	}
	return abs, nil
}

// discover searches PATH for every adapter first, then the adapters cache directory.
func (l *Locator) discover(adapters []string) (string, error) {
	for _, name := range adapters {
		for _, dir := range filepath.SplitList(l.pathEnv) {
			if dir == "" {
				continue
			}
			candidate := filepath.Join(dir, binaryName(name))
			if filepath.IsAbs(candidate) && l.isExecutable(candidate) {
				return candidate, nil
			}
		}
	}

	if l.cacheRoot != "" {
		root := domain.DefaultAdaptersPath(l.cacheRoot)
		for _, name := range adapters {
			candidate := filepath.Join(root, name, binaryName(name))
			if l.isExecutable(candidate) {
				return candidate, nil
			}
		}
	}

	return "", zerr.With(zerr.Wrap(domain.ErrDebuggerUnavailable, "searched PATH and the adapters directory"),
		"adapters", adapters)
}

func (l *Locator) isExecutable(path string) bool {
	info, err := l.fs.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}

func binaryName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
