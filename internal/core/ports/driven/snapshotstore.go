package driven

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// SnapshotStore persists embedding index snapshots. A snapshot is
// written once by the offline index build and loaded read-only at
// process start; there is no incremental mutation.
type SnapshotStore interface {
	// Save writes the snapshot atomically (a partial write must never
	// be observable as a valid snapshot).
	Save(ctx context.Context, snap *domain.IndexSnapshot) error

	// Load reads the snapshot back. Returns domain.ErrNotFound when no
	// snapshot has been written yet.
	Load(ctx context.Context) (*domain.IndexSnapshot, error)
}
