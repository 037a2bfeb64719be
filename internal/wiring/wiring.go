// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dbridge/internal/adapters/artifact"
	_ "go.trai.ch/dbridge/internal/adapters/config"
	_ "go.trai.ch/dbridge/internal/adapters/debugger"
	_ "go.trai.ch/dbridge/internal/adapters/fs"
	_ "go.trai.ch/dbridge/internal/adapters/logger"
	_ "go.trai.ch/dbridge/internal/adapters/shell"
	_ "go.trai.ch/dbridge/internal/adapters/solution"
	// Register app and engine nodes.
	_ "go.trai.ch/dbridge/internal/app"
	_ "go.trai.ch/dbridge/internal/engine/resolver"
)
