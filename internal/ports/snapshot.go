package ports

import (
	"context"

	"euchre/internal/domain"
)

// SnapshotStore persists the authoritative game aggregate between ticks so a
// table survives a match handler restart.
type SnapshotStore interface {
	// Load fetches the stored snapshot. found is false when no usable
	// snapshot exists; a storage failure or an invalid snapshot is treated
	// as absent, with the error available for logging.
	Load(ctx context.Context) (*domain.Game, bool, error)

	// Save writes the snapshot. A save failure must not take the table down;
	// callers log the error and continue.
	Save(ctx context.Context, game *domain.Game) error
}
