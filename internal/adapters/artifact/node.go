package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/ports"
)

// NodeID is the unique identifier for the artifact locator Graft node.
const NodeID graft.ID = "adapter.artifact"

func init() {
	graft.Register(graft.Node[ports.ArtifactLocator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.ArtifactLocator, error) {
			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewInterpreter(fsys, walker), nil
		},
	})
}
