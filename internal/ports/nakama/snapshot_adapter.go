package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"euchre/internal/domain"
	"euchre/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaSnapshotStore implements ports.SnapshotStore on Nakama storage. Each
// match writes one system-owned object keyed by its match id.
type NakamaSnapshotStore struct {
	nk         runtime.NakamaModule
	collection string
	key        string
}

// NewNakamaSnapshotStore creates a snapshot store for one match.
func NewNakamaSnapshotStore(nk runtime.NakamaModule, collection, matchID string) *NakamaSnapshotStore {
	return &NakamaSnapshotStore{
		nk:         nk,
		collection: collection,
		key:        matchID,
	}
}

// Load fetches the stored snapshot. Read failures and snapshots that no
// longer validate are reported as absent so the match starts fresh.
func (s *NakamaSnapshotStore) Load(ctx context.Context) (*domain.Game, bool, error) {
	objects, err := s.nk.StorageRead(ctx, []*runtime.StorageRead{
		{Collection: s.collection, Key: s.key},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(objects) == 0 {
		return nil, false, nil
	}

	var game domain.Game
	if err := json.Unmarshal([]byte(objects[0].Value), &game); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if err := game.Validate(); err != nil {
		return nil, false, fmt.Errorf("snapshot failed validation: %w", err)
	}
	return &game, true, nil
}

// Save writes the snapshot.
func (s *NakamaSnapshotStore) Save(ctx context.Context, game *domain.Game) error {
	value, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      s.collection,
			Key:             s.key,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

var _ ports.SnapshotStore = (*NakamaSnapshotStore)(nil)
