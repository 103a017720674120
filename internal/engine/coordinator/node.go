package coordinator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inkcache/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/inkcache/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/inkcache/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/inkcache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/inkcache/internal/adapters/thumbnail"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/inkcache/internal/core/ports"
)

// NodeID is the unique identifier for the coordinator Graft node.
const NodeID graft.ID = "engine.coordinator"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			progrock.NodeID,
			thumbnail.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Coordinator, error) {
			opener, err := graft.Dep[ports.StoreOpener](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			thumbnailer, err := graft.Dep[ports.Thumbnailer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(opener, hasher, verifier, telemetry, thumbnailer, log), nil
		},
	})
}
