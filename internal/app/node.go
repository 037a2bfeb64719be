package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dbridge/internal/adapters/artifact" //nolint:depguard // Wired in app layer
	"go.trai.ch/dbridge/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dbridge/internal/adapters/debugger" //nolint:depguard // Wired in app layer
	"go.trai.ch/dbridge/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dbridge/internal/adapters/shell"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dbridge/internal/adapters/solution" //nolint:depguard // Wired in app layer
	"go.trai.ch/dbridge/internal/core/ports"
	"go.trai.ch/dbridge/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			solution.NodeID,
			resolver.NodeID,
			shell.NodeID,
			artifact.NodeID,
			debugger.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	solutions, err := graft.Dep[ports.SolutionLoader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := graft.Dep[ports.ArtifactLocator](ctx)
	if err != nil {
		return nil, err
	}

	debuggers, err := graft.Dep[ports.DebuggerLocator](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, solutions, res, executor, artifacts, debuggers, log), nil
}
