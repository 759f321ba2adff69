package logic

import (
	"context"
	"errors"
)

// ErrSnapshotUnavailable is returned while no snapshot has been loaded.
var ErrSnapshotUnavailable = errors.New("snapshot not loaded")

// SnapshotProvider serves the current dataset.
type SnapshotProvider interface {
	Current() (*Dataset, error)
}

// Reloader re-fetches the published snapshot.
type Reloader interface {
	Reload(ctx context.Context) (*Dataset, error)
}
