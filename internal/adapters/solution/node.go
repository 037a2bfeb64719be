package solution

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dbridge/internal/adapters/fs"
	"go.trai.ch/dbridge/internal/core/ports"
)

// NodeID is the unique identifier for the solution loader Graft node.
const NodeID graft.ID = "adapter.solution"

func init() {
	graft.Register(graft.Node[ports.SolutionLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.SolutionLoader, error) {
			fsys, err := graft.Dep[fs.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fsys), nil
		},
	})
}
