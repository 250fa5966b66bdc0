package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubChecker struct {
	entitled bool
	err      error
	calls    int
}

func (s *stubChecker) IsEntitled(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.entitled, s.err
}

func TestCachedChecker_NilClientPassesThrough(t *testing.T) {
	next := &stubChecker{entitled: true}
	c := NewCachedChecker(next, nil, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		ok, err := c.IsEntitled(context.Background(), uuid.New())
		if err != nil || !ok {
			t.Fatalf("expected entitled, got ok=%v err=%v", ok, err)
		}
	}
	if next.calls != 2 {
		t.Errorf("expected 2 calls without cache, got %d", next.calls)
	}

	// must not panic
	c.Invalidate(context.Background(), uuid.New())
}

func TestCachedChecker_PropagatesErrors(t *testing.T) {
	want := errors.New("db down")
	c := NewCachedChecker(&stubChecker{err: want}, nil, time.Minute, zap.NewNop())

	_, err := c.IsEntitled(context.Background(), uuid.New())
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001")
	if got := key(id); got != "entitlement:6f1c2a4e-0000-4000-8000-000000000001" {
		t.Errorf("unexpected key %s", got)
	}
}

// fakeCache keeps values in memory and can be made to fail every call.
type fakeCache struct {
	values  map[string]string
	ttls    map[string]time.Duration
	deleted []string
	err     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) Get(ctx context.Context, k string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[k]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCache) Set(ctx context.Context, k string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[k] = value.(string)
	f.ttls[k] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, k := range keys {
		delete(f.values, k)
		f.deleted = append(f.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func cachedWith(next Checker, cache Cache) *CachedChecker {
	return &CachedChecker{next: next, rdb: cache, ttl: time.Minute, log: zap.NewNop()}
}

func TestCachedChecker_HitSkipsStore(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	next := &stubChecker{entitled: true}
	cache := newFakeCache()
	c := cachedWith(next, cache)

	for i := 0; i < 3; i++ {
		ok, err := c.IsEntitled(ctx, id)
		if err != nil || !ok {
			t.Fatalf("call %d: ok=%v err=%v", i, ok, err)
		}
	}

	if next.calls != 1 {
		t.Fatalf("expected one store lookup, got %d", next.calls)
	}
	if cache.ttls[key(id)] != time.Minute {
		t.Fatalf("expected entry cached for a minute, got %s", cache.ttls[key(id)])
	}
}

func TestCachedChecker_NegativeNotCached(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	next := &stubChecker{entitled: false}
	cache := newFakeCache()
	c := cachedWith(next, cache)

	if ok, _ := c.IsEntitled(ctx, id); ok {
		t.Fatal("expected not entitled")
	}
	if _, cached := cache.values[key(id)]; cached {
		t.Fatal("negative answers must not be cached")
	}

	next.entitled = true
	if ok, _ := c.IsEntitled(ctx, id); !ok {
		t.Fatal("fresh subscription should be visible on the next call")
	}
	if next.calls != 2 {
		t.Fatalf("expected 2 store lookups, got %d", next.calls)
	}
}

func TestCachedChecker_Invalidate(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	next := &stubChecker{entitled: true}
	cache := newFakeCache()
	c := cachedWith(next, cache)

	_, _ = c.IsEntitled(ctx, id)
	c.Invalidate(ctx, id)

	if len(cache.deleted) != 1 || cache.deleted[0] != key(id) {
		t.Fatalf("expected %s deleted, got %v", key(id), cache.deleted)
	}

	next.entitled = false
	if ok, _ := c.IsEntitled(ctx, id); ok {
		t.Fatal("revoked subscription must not be served from cache after invalidate")
	}
}

func TestCachedChecker_CacheFailureFallsBackToStore(t *testing.T) {
	cache := newFakeCache()
	cache.err = errors.New("connection refused")
	next := &stubChecker{entitled: true}
	c := cachedWith(next, cache)

	ok, err := c.IsEntitled(context.Background(), uuid.New())
	if err != nil || !ok {
		t.Fatalf("expected store answer, got ok=%v err=%v", ok, err)
	}

	// must not panic or surface the error
	c.Invalidate(context.Background(), uuid.New())
}
