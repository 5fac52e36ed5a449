// Package scorecardcache stores rendered scorecards so repeated page loads
// skip the aggregation query.
package scorecardcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "citl:scorecard"
	genPrefix = "citl:scorecard-gen"
)

// Cache holds serialized scorecards keyed by Key. Every team season has a
// generation; entries written under an older generation are never read
// again, so a render that raced an invalidation cannot resurface.
type Cache interface {
	// Generation returns the team season's current generation, zero when
	// it was never invalidated.
	Generation(ctx context.Context, team string, season int) (int64, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// InvalidateTeamSeason advances the team season's generation.
	InvalidateTeamSeason(ctx context.Context, team string, season int) error
}

// Key names one scorecard rendering. Team names match case-insensitively.
func Key(season int, team string, generation int64, variant, keyMode string) string {
	return fmt.Sprintf("%s:%d:%s:%d:%s:%s", keyPrefix, season, strings.ToLower(team), generation, variant, keyMode)
}

func generationKey(season int, team string) string {
	return fmt.Sprintf("%s:%d:%s", genPrefix, season, strings.ToLower(team))
}

// Client is the subset of *redis.Client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Redis is a Cache backed by redis with a fixed TTL.
type Redis struct {
	client Client
	ttl    time.Duration
}

func NewRedis(client Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// NewRedisClient dials addr and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Generation(ctx context.Context, team string, season int) (int64, error) {
	key := generationKey(season, team)
	gen, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read generation %s: %w", key, err)
	}
	return gen, nil
}

// InvalidateTeamSeason bumps the generation with INCR. The superseded
// entries are left to expire with their TTL.
func (r *Redis) InvalidateTeamSeason(ctx context.Context, team string, season int) error {
	key := generationKey(season, team)
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to advance generation %s: %w", key, err)
	}
	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Generation(context.Context, string, int) (int64, error)  { return 0, nil }
func (Nop) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte) error               { return nil }
func (Nop) InvalidateTeamSeason(context.Context, string, int) error { return nil }
