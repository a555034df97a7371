package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/panaderia/backend/internal/pkg/config"
)

// memCmdable implements the three commands ListCache issues; anything else
// panics through the nil embedded interface.
type memCmdable struct {
	redis.Cmdable
	data    map[string]string
	ttls    map[string]time.Duration
	deleted []string
	err     error
}

func newMemCmdable() *memCmdable {
	return &memCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memCmdable) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (m *memCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type category struct {
	Name string `json:"nombreCategoria"`
}

func TestListCache_MissThenHit(t *testing.T) {
	ctx := context.Background()
	store := newMemCmdable()
	cache := NewListCache(store)

	var got []category
	found, err := cache.Load(ctx, "categorias", &got)
	if err != nil || found {
		t.Fatalf("expected a clean miss, got found=%v err=%v", found, err)
	}

	want := []category{{Name: "Pan dulce"}, {Name: "Bolillo"}}
	if err := cache.Save(ctx, "categorias", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store.data["catalog:categorias"]; !ok {
		t.Fatalf("expected the prefixed key, got %v", store.data)
	}
	if store.ttls["catalog:categorias"] != listTTL {
		t.Fatalf("expected ttl %s, got %s", listTTL, store.ttls["catalog:categorias"])
	}

	found, err = cache.Load(ctx, "categorias", &got)
	if err != nil || !found {
		t.Fatalf("expected a hit, got found=%v err=%v", found, err)
	}
	if len(got) != 2 || got[0].Name != "Pan dulce" || got[1].Name != "Bolillo" {
		t.Fatalf("unexpected decoded value %+v", got)
	}
}

func TestListCache_DecodeError(t *testing.T) {
	store := newMemCmdable()
	store.data["catalog:productos"] = "{not json"

	var got []category
	found, err := NewListCache(store).Load(context.Background(), "productos", &got)
	if err == nil || found {
		t.Fatalf("expected a decode error, got found=%v err=%v", found, err)
	}
}

func TestListCache_BackendError(t *testing.T) {
	store := newMemCmdable()
	store.err = errors.New("connection refused")

	var got []category
	found, err := NewListCache(store).Load(context.Background(), "productos", &got)
	if !errors.Is(err, store.err) || found {
		t.Fatalf("expected the backend error, got found=%v err=%v", found, err)
	}
}

func TestListCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := newMemCmdable()
	cache := NewListCache(store)

	if err := cache.Save(ctx, "ubicaciones", []category{{Name: "x"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cache.Invalidate(ctx, "ubicaciones"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "catalog:ubicaciones" {
		t.Fatalf("unexpected deletes %v", store.deleted)
	}

	var got []category
	if found, _ := cache.Load(ctx, "ubicaciones", &got); found {
		t.Fatalf("invalidated key must miss")
	}
}

func TestOptions_BoundEveryRoundTrip(t *testing.T) {
	opts := options(config.RedisConfig{Addr: "cache:6379", DB: 2})
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected address %+v", opts)
	}
	if opts.ReadTimeout != defaultOpTimeout || opts.WriteTimeout != defaultOpTimeout {
		t.Fatalf("expected default timeouts, got read=%s write=%s", opts.ReadTimeout, opts.WriteTimeout)
	}

	opts = options(config.RedisConfig{Addr: "cache:6379", Timeout: time.Second})
	if opts.ReadTimeout != time.Second || opts.DialTimeout != 2*time.Second {
		t.Fatalf("configured timeout ignored: %+v", opts)
	}
}

func TestConnect_UnreachableFails(t *testing.T) {
	_, err := Connect(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected a ping failure")
	}
}
