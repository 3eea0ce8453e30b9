package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/kanadrill/internal/adaptive"
	"github.com/abhisek/kanadrill/internal/config"
	"github.com/abhisek/kanadrill/internal/store"
)

// openSnapshotRepo returns the snapshot repository for the configured
// backend and a function releasing it.
func openSnapshotRepo(ctx context.Context, cfg *config.Config, st *store.Store) (store.SnapshotRepo, func() error, error) {
	if cfg.Persist.Backend != config.BackendRedis {
		return st.SnapshotRepo(), func() error { return nil }, nil
	}
	client, err := store.DialRedis(ctx, cfg.Persist.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return store.NewRedisSnapshotRepo(client, cfg.Persist.RedisKey), client.Close, nil
}

// restoreSelector applies the latest snapshot, if any, to sel. It reports
// whether anything was restored.
func restoreSelector(ctx context.Context, repo store.SnapshotRepo, sel *adaptive.Selector) (bool, error) {
	snap, err := repo.Latest(ctx)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if snap.Data.Selector == nil {
		return false, nil
	}
	sel.Restore(snap.Data.Selector)
	return true, nil
}

// saveSelector writes the selector state and prunes old snapshots.
func saveSelector(ctx context.Context, repo store.SnapshotRepo, sel *adaptive.Selector, keep int) error {
	err := repo.Save(ctx, &store.Snapshot{
		Timestamp: time.Now().UTC(),
		Data: store.SnapshotData{
			Version:  store.SnapshotDataVersion,
			Selector: sel.Snapshot(),
		},
	})
	if err != nil {
		return err
	}
	if keep > 0 {
		if err := repo.Prune(ctx, keep); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}
	return nil
}
