package signal

import (
	"context"
	"time"
)

// SignalRepository reads saved signals and their activity history.
type SignalRepository interface {
	// GetByID returns a single signal.
	GetByID(ctx context.Context, id string) (*Signal, error)

	// ListActive returns all active signals.
	ListActive(ctx context.Context) ([]*Signal, error)

	// ListAll returns every signal regardless of active state.
	ListAll(ctx context.Context) ([]*Signal, error)

	// ListByOwner returns a user's own signals.
	ListByOwner(ctx context.Context, ownerID string) ([]*Signal, error)

	// ListActivitySnapshots returns daily activity counts for a signal
	// since the given time, oldest first.
	ListActivitySnapshots(ctx context.Context, signalID string, since time.Time) ([]ActivitySnapshot, error)
}
