package thumbnail

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inkcache/internal/core/ports"
)

// NodeID is the unique identifier for the thumbnailer Graft node.
const NodeID graft.ID = "adapter.thumbnailer"

func init() {
	graft.Register(graft.Node[ports.Thumbnailer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Thumbnailer, error) {
			return NewScaler(), nil
		},
	})
}
