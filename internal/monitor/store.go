package monitor

import (
	"context"

	"github.com/linnemanlabs/harken/internal/sound"
)

// Store is the persistence interface for fired alert events. The engine
// itself never touches storage; the service appends events after each frame
// completes.
type Store interface {
	Append(ctx context.Context, ev *sound.Event) error
	Recent(ctx context.Context, limit int) ([]*sound.Event, error)
}

// Notifier delivers fired alert events to an external channel (webhook,
// push relay). Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, ev *sound.Event) error
}
