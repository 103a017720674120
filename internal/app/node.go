package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inkcache/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/inkscape"           //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/svg"                //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/inkcache/internal/engine/coordinator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds the objects main needs after wiring.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			svg.NodeID,
			inkscape.NodeID,
			coordinator.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
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

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log, Telemetry: telemetry}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	documents, err := graft.Dep[ports.DocumentLoader](ctx)
	if err != nil {
		return nil, err
	}

	renderers, err := graft.Dep[ports.RendererFactory](ctx)
	if err != nil {
		return nil, err
	}

	coord, err := graft.Dep[*coordinator.Coordinator](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	index, err := graft.Dep[ports.CacheIndex](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, documents, renderers, coord, opener, hasher, index, w, log), nil
}
