package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultViewTTL = 5 * time.Minute

// ViewCache keeps rendered read views in Redis.
//
//	view-gen:<view>           current version, advanced by INCR
//	view:<view>:<version>     payload rendered at that version, expires after ttl
//
// The version counter has no expiry so it never restarts below a version
// whose payload may still be cached.
type ViewCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewViewCache creates a ViewCache whose entries expire after ttl.
func NewViewCache(client redis.Cmdable, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = defaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Get returns the current version and its payload; a missing key is a miss,
// not an error.
func (v *ViewCache) Get(ctx context.Context, view string) ([]byte, int64, bool, error) {
	version, err := v.client.Get(ctx, genKey(view)).Int64()
	if errors.Is(err, redis.Nil) {
		version, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("view cache version: %w", err)
	}

	payload, err := v.client.Get(ctx, payloadKey(view, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("view cache get: %w", err)
	}
	return payload, version, true, nil
}

func (v *ViewCache) Set(ctx context.Context, view string, version int64, payload []byte) error {
	if err := v.client.Set(ctx, payloadKey(view, version), payload, v.ttl).Err(); err != nil {
		return fmt.Errorf("view cache set: %w", err)
	}
	return nil
}

// Invalidate advances the view's version. Payloads stored under older
// versions are no longer read and expire on their own.
func (v *ViewCache) Invalidate(ctx context.Context, view string) error {
	if err := v.client.Incr(ctx, genKey(view)).Err(); err != nil {
		return fmt.Errorf("view cache invalidate: %w", err)
	}
	return nil
}

func genKey(view string) string {
	return "view-gen:" + view
}

func payloadKey(view string, version int64) string {
	return "view:" + view + ":" + strconv.FormatInt(version, 10)
}
