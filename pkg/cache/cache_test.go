package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/teczamora/repositorio65/pkg/cache"
	"github.com/teczamora/repositorio65/pkg/internal/storage/kv"
)

type listing struct {
	Total int      `json:"total"`
	Names []string `json:"names"`
}

func newCache(t *testing.T) *cache.Cache {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("new memory kv: %v", err)
	}

	return cache.NewCache(store)
}

func TestTypedRoundtrip(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	want := listing{Total: 2, Names: []string{"informe.pdf", "anexo.xlsx"}}
	if err := cache.Set(ctx, c, "l", want, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := cache.Get[listing](ctx, c, "l")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Total != want.Total || len(got.Names) != 2 {
		t.Errorf("got = %+v, want %+v", got, want)
	}
}

func TestGetMiss(t *testing.T) {
	c := newCache(t)

	if _, err := cache.Get[listing](context.Background(), c, "absent"); err == nil {
		t.Error("miss returned no error")
	}
}

func TestGetOrSetComputesOnce(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	calls := 0
	getter := func() (listing, error) {
		calls++
		return listing{Total: calls}, nil
	}

	for range 3 {
		got, err := cache.GetOrSet(ctx, c, "l", getter, time.Minute)
		if err != nil {
			t.Fatalf("get or set: %v", err)
		}

		if got.Total != 1 {
			t.Errorf("total = %d, want cached first result", got.Total)
		}
	}

	if calls != 1 {
		t.Errorf("getter calls = %d, want 1", calls)
	}
}

func TestGetOrSetPropagatesGetterError(t *testing.T) {
	c := newCache(t)

	_, err := cache.GetOrSet(context.Background(), c, "l", func() (listing, error) {
		return listing{}, fmt.Errorf("db unavailable")
	}, time.Minute)
	if err == nil {
		t.Error("getter error swallowed")
	}

	// A failed compute must not poison the cache.
	if _, err := cache.Get[listing](context.Background(), c, "l"); err == nil {
		t.Error("failed compute was cached")
	}
}
