package redis

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeCmdable implements the subset of redis.Cmdable used by ViewCache.
type fakeCmdable struct {
	redis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestViewCache_RoundTrip(t *testing.T) {
	fake := newFakeCmdable()
	cache := NewViewCache(fake, time.Minute)
	ctx := context.Background()
	view := "doctor/dashboard:doc-1"

	_, version, found, err := cache.Get(ctx, view)
	if err != nil || found || version != 0 {
		t.Fatalf("expected miss at version 0, got version=%d found=%v err=%v", version, found, err)
	}

	if err := cache.Set(ctx, view, version, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if fake.ttls["view:doctor/dashboard:doc-1:0"] != time.Minute {
		t.Fatalf("expected ttl to be applied, got %v", fake.ttls)
	}

	payload, version, found, err := cache.Get(ctx, view)
	if err != nil || !found || version != 0 || string(payload) != "[]" {
		t.Fatalf("expected hit, got %q version=%d found=%v err=%v", payload, version, found, err)
	}

	if err := cache.Invalidate(ctx, view); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, version, found, _ := cache.Get(ctx, view); found || version != 1 {
		t.Fatalf("expected miss at version 1 after invalidation, got version=%d found=%v", version, found)
	}
	if _, ok := fake.ttls["view-gen:"+view]; ok {
		t.Fatalf("version counter must not expire")
	}
}

func TestViewCache_SetForSupersededVersionIsNotServed(t *testing.T) {
	fake := newFakeCmdable()
	cache := NewViewCache(fake, time.Minute)
	ctx := context.Background()
	view := "doctor/dashboard:doc-1"

	_, before, _, err := cache.Get(ctx, view)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := cache.Invalidate(ctx, view); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := cache.Set(ctx, view, before, []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, version, found, _ := cache.Get(ctx, view); found {
		t.Fatalf("render from version %d served at version %d", before, version)
	}
}

func TestViewCache_GetError(t *testing.T) {
	fake := newFakeCmdable()
	fake.getErr = errors.New("i/o timeout")
	cache := NewViewCache(fake, 0)

	if _, _, _, err := cache.Get(context.Background(), "x"); err == nil {
		t.Fatalf("expected error")
	}
	if cache.ttl != defaultViewTTL {
		t.Fatalf("expected default ttl, got %v", cache.ttl)
	}
}
