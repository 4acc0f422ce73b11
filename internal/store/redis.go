package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/learnverse/backend/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

// redisStore keeps each document as a redis hash for scalar fields plus
// one native redis set per set field. SADD, SREM, and HINCRBY give the
// conditional primitives their atomicity; the store never does a
// read-modify-write on the caller's behalf.
type redisStore struct {
	schema Schema
	prefix string
	client *redis.Client
}

// setMaxScript raises a hash field to the given value unless the
// current value is already higher. Runs as a single script, so
// concurrent callers can only move the field forward.
var setMaxScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
if current == false or tonumber(current) < tonumber(ARGV[2]) then
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
end
return redis.status_reply('OK')
`)

func NewRedisStore(ctx context.Context, schema Schema) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            xcontext.Configs(ctx).Redis.Addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisStore{
		schema: schema,
		prefix: xcontext.Configs(ctx).Store.KeyPrefix,
		client: client,
	}, nil
}

func (s *redisStore) docKey(collection, id string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, collection, id)
}

func (s *redisStore) setKey(collection, id, field string) string {
	return fmt.Sprintf("%s:%s:%s:%s", s.prefix, collection, id, field)
}

func (s *redisStore) indexKey(collection string) string {
	return fmt.Sprintf("%s:%s:_ids", s.prefix, collection)
}

// snapshotCmds queues the reads that assemble a snapshot. The queued
// commands run inside the same pipeline as any preceding mutation, so
// the snapshot reflects the post-mutation state.
func (s *redisStore) snapshotCmds(
	ctx context.Context, pipe redis.Pipeliner, collection, id string,
) (*redis.MapStringStringCmd, map[string]*redis.StringSliceCmd) {
	hashCmd := pipe.HGetAll(ctx, s.docKey(collection, id))
	setCmds := make(map[string]*redis.StringSliceCmd)
	for _, field := range s.schema[collection] {
		setCmds[field] = pipe.SMembers(ctx, s.setKey(collection, id, field))
	}

	return hashCmd, setCmds
}

func buildSnapshot(
	id string,
	hashCmd *redis.MapStringStringCmd,
	setCmds map[string]*redis.StringSliceCmd,
) (*Snapshot, error) {
	fields := hashCmd.Val()
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	snapshot := &Snapshot{
		ID:     id,
		Fields: fields,
		Sets:   make(map[string]map[string]struct{}, len(setCmds)),
	}

	for field, cmd := range setCmds {
		members := make(map[string]struct{}, len(cmd.Val()))
		for _, m := range cmd.Val() {
			members[m] = struct{}{}
		}

		snapshot.Sets[field] = members
	}

	return snapshot, nil
}

func (s *redisStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	pipe := s.client.TxPipeline()
	hashCmd, setCmds := s.snapshotCmds(ctx, pipe, collection, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return buildSnapshot(id, hashCmd, setCmds)
}

func (s *redisStore) Create(
	ctx context.Context, collection, id string, fields map[string]string,
) error {
	created, err := s.client.HSetNX(ctx, s.docKey(collection, id), "id", id).Result()
	if err != nil {
		return err
	}

	if !created {
		return fmt.Errorf("%w: %s/%s", ErrAlreadyExists, collection, id)
	}

	pipe := s.client.TxPipeline()
	for k, v := range fields {
		pipe.HSet(ctx, s.docKey(collection, id), k, v)
	}
	pipe.SAdd(ctx, s.indexKey(collection), id)

	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisStore) SetField(ctx context.Context, collection, id, field, value string) error {
	if err := s.exists(ctx, collection, id); err != nil {
		return err
	}

	return s.client.HSet(ctx, s.docKey(collection, id), field, value).Err()
}

func (s *redisStore) exists(ctx context.Context, collection, id string) error {
	ok, err := s.client.HExists(ctx, s.docKey(collection, id), "id").Result()
	if err != nil {
		return err
	}

	if !ok {
		return ErrNotFound
	}

	return nil
}

func (s *redisStore) ConditionalAddToSet(
	ctx context.Context, collection, id, field, member string,
) (*Snapshot, error) {
	if err := s.exists(ctx, collection, id); err != nil {
		return nil, err
	}

	// The SCARD runs inside the same MULTI/EXEC as the SADD, so the
	// pre-mutation cardinality is atomic with the mutation itself.
	pipe := s.client.TxPipeline()
	prevCmd := pipe.SCard(ctx, s.setKey(collection, id, field))
	pipe.SAdd(ctx, s.setKey(collection, id, field), member)
	hashCmd, setCmds := s.snapshotCmds(ctx, pipe, collection, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	snapshot, err := buildSnapshot(id, hashCmd, setCmds)
	if err != nil {
		return nil, err
	}

	snapshot.PrevCard = int(prevCmd.Val())
	return snapshot, nil
}

func (s *redisStore) ConditionalRemoveFromSet(
	ctx context.Context, collection, id, field, member string,
) (*Snapshot, error) {
	if err := s.exists(ctx, collection, id); err != nil {
		return nil, err
	}

	pipe := s.client.TxPipeline()
	prevCmd := pipe.SCard(ctx, s.setKey(collection, id, field))
	pipe.SRem(ctx, s.setKey(collection, id, field), member)
	hashCmd, setCmds := s.snapshotCmds(ctx, pipe, collection, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	snapshot, err := buildSnapshot(id, hashCmd, setCmds)
	if err != nil {
		return nil, err
	}

	snapshot.PrevCard = int(prevCmd.Val())
	return snapshot, nil
}

func (s *redisStore) Increment(
	ctx context.Context, collection, id, field string, delta int64,
) (*Snapshot, error) {
	if err := s.exists(ctx, collection, id); err != nil {
		return nil, err
	}

	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, s.docKey(collection, id), field, delta)
	hashCmd, setCmds := s.snapshotCmds(ctx, pipe, collection, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return buildSnapshot(id, hashCmd, setCmds)
}

func (s *redisStore) SetMax(
	ctx context.Context, collection, id, field string, value int64,
) (*Snapshot, error) {
	if err := s.exists(ctx, collection, id); err != nil {
		return nil, err
	}

	err := setMaxScript.Run(ctx, s.client, []string{s.docKey(collection, id)}, field, value).Err()
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, collection, id)
}

func (s *redisStore) Query(
	ctx context.Context, collection string, filter Filter,
) ([]Snapshot, error) {
	filter = clampFilter(ctx, filter)

	ids, err := s.client.SMembers(ctx, s.indexKey(collection)).Result()
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)

	var result []Snapshot
	skipped := 0
	for _, id := range ids {
		snapshot, err := s.Get(ctx, collection, id)
		if err != nil {
			if err == ErrNotFound {
				continue
			}

			return nil, err
		}

		matched := snapshot.ID
		if filter.Field != "" {
			matched = snapshot.Str(filter.Field)
		}

		if filter.Substring != "" && !strings.Contains(matched, filter.Substring) {
			continue
		}

		if skipped < filter.Offset {
			skipped++
			continue
		}

		result = append(result, *snapshot)
		if len(result) >= filter.Limit {
			break
		}
	}

	return result, nil
}
