// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/inkcache/internal/adapters/cas"
	_ "go.trai.ch/inkcache/internal/adapters/config"
	_ "go.trai.ch/inkcache/internal/adapters/fs"
	_ "go.trai.ch/inkcache/internal/adapters/inkscape"
	_ "go.trai.ch/inkcache/internal/adapters/logger"
	_ "go.trai.ch/inkcache/internal/adapters/svg"
	_ "go.trai.ch/inkcache/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/inkcache/internal/adapters/thumbnail"
	_ "go.trai.ch/inkcache/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/inkcache/internal/app"
	_ "go.trai.ch/inkcache/internal/engine/coordinator"
)
