package debugger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/ports"
)

// NodeID is the unique identifier for the debugger locator Graft node.
const NodeID graft.ID = "adapter.debugger"

func init() {
	graft.Register(graft.Node[ports.DebuggerLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.DebuggerLocator, error) {
			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			// Without a user cache directory discovery falls back to PATH only.
			cacheRoot, _ := os.UserCacheDir()
			return NewLocator(fsys, os.Getenv("PATH"), cacheRoot), nil
		},
	})
}
