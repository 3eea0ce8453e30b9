package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/kanadrill/internal/adaptive"
)

func newTestRedisRepo(t *testing.T) (*RedisSnapshotRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSnapshotRepo(client, ""), mr
}

func TestRedisSnapshot_LatestEmpty(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRedisSnapshot_SaveAndLatest(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	data := SnapshotData{
		Version: 1,
		Selector: &adaptive.Snapshot{
			Version: adaptive.SnapshotVersion,
			Round:   3,
			Items:   []adaptive.ItemState{{ID: "ka", Weight: 0.8}},
		},
	}
	require.NoError(t, repo.Save(ctx, &Snapshot{Timestamp: now, Data: SnapshotData{Version: 0}}))
	require.NoError(t, repo.Save(ctx, &Snapshot{Timestamp: now, Data: data}))

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.ID)
	assert.True(t, snap.Timestamp.Equal(now))
	assert.Equal(t, data, snap.Data)
	assert.True(t, mr.Exists(DefaultRedisKey))
}

func TestRedisSnapshot_Prune(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	for v := 1; v <= 4; v++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: v}}))
	}
	require.NoError(t, repo.Prune(ctx, 1))

	n, err := repo.client.ZCard(ctx, repo.key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Data.Version)
}

func TestRedisSnapshot_SharedKeyIDsNeverRepeat(t *testing.T) {
	a, mr := newTestRedisRepo(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	b := NewRedisSnapshotRepo(client, "")
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		repo := a
		if i%2 == 1 {
			repo = b
		}
		g.Go(func() error {
			return repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: 1}})
		})
	}
	require.NoError(t, g.Wait())

	n, err := a.client.ZCard(ctx, a.key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(20), n, "every save is kept under its own ID")

	require.NoError(t, a.Prune(ctx, 1))
	require.NoError(t, b.Save(ctx, &Snapshot{Data: SnapshotData{Version: 2}}))
	snap, err := a.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 21, snap.ID)
	assert.Equal(t, 2, snap.Data.Version)
}

func TestRedisSnapshot_PruneAll(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: 1}}))
	require.NoError(t, repo.Prune(ctx, 0))
	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	mr.Close()
	assert.Error(t, repo.Prune(ctx, 0))
}

func TestRedisSnapshot_DeleteAll(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: 1}}))
	require.NoError(t, repo.DeleteAll(ctx))
	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestDialRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := DialRedis(context.Background(), mr.Addr())
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = DialRedis(context.Background(), mr.Addr())
	assert.Error(t, err)
}
