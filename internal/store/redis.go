package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key used when none is configured.
const DefaultRedisKey = "kanadrill:snapshots"

// RedisSnapshotRepo keeps snapshots in a Redis sorted set scored by ID, so
// that several drill processes can share one weight table. IDs come from
// INCR on a companion counter key and are never reused.
type RedisSnapshotRepo struct {
	client redis.UniversalClient
	key    string
}

// NewRedisSnapshotRepo creates a SnapshotRepo on client under key.
func NewRedisSnapshotRepo(client redis.UniversalClient, key string) *RedisSnapshotRepo {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSnapshotRepo{client: client, key: key}
}

func (r *RedisSnapshotRepo) seqKey() string {
	return r.key + ":seq"
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

type redisSnapshot struct {
	ID        int          `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Data      SnapshotData `json:"data"`
}

func (r *RedisSnapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("allocate snapshot id: %w", err)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	b, err := json.Marshal(redisSnapshot{ID: int(id), Timestamp: ts.UTC(), Data: snap.Data})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.client.ZAdd(ctx, r.key, redis.Z{Score: float64(id), Member: b}).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *RedisSnapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	raw, err := r.client.ZRevRange(ctx, r.key, 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrSnapshotNotFound
	}

	var rs redisSnapshot
	if err := json.Unmarshal([]byte(raw[0]), &rs); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &Snapshot{ID: rs.ID, Timestamp: rs.Timestamp, Data: rs.Data}, nil
}

func (r *RedisSnapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		if err := r.client.Del(ctx, r.key).Err(); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
		return nil
	}
	if err := r.client.ZRemRangeByRank(ctx, r.key, 0, int64(-keep-1)).Err(); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// DeleteAll removes every stored snapshot. The ID counter is kept.
func (r *RedisSnapshotRepo) DeleteAll(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
