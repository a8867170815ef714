package careervalue

import (
	"context"
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	cache := NewCache(time.Hour)

	t.Run("new cache is empty", func(t *testing.T) {
		if cache.Size() != 0 {
			t.Errorf("new cache size = %d, want 0", cache.Size())
		}
	})

	t.Run("set and get", func(t *testing.T) {
		cache.Set("/players/R/RunnRo00.htm", 25)

		got, ok := cache.Get("/players/R/RunnRo00.htm")
		if !ok || got != 25 {
			t.Errorf("Get() = %d, %v, want 25, true", got, ok)
		}
	})

	t.Run("get non-existent", func(t *testing.T) {
		if _, ok := cache.Get("/players/X/Unknown00.htm"); ok {
			t.Error("Get(unknown) should miss")
		}
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewCache(time.Millisecond)
		cache.Set("/players/E/EdgeEd00.htm", 20)
		time.Sleep(5 * time.Millisecond)

		if _, ok := cache.Get("/players/E/EdgeEd00.htm"); ok {
			t.Error("Get after expiry should miss")
		}
		if cache.Size() != 0 {
			t.Errorf("expired entry not removed, size = %d", cache.Size())
		}
	})
}

func TestCache_CleanExpired(t *testing.T) {
	cache := NewCache(time.Hour)
	cache.Set("/fresh", 1)
	cache.Set("/stale", 2)
	cache.CachedAt["/stale"] = time.Now().Add(-2 * time.Hour)
	cache.Values["/orphan"] = 3

	if removed := cache.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired() = %d, want 2", removed)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
}

func TestCompute_UsesCache(t *testing.T) {
	fetcher := testFetcher(t)
	cache := NewCache(time.Hour)
	agg := quietAggregator(fetcher, WithCache(cache))
	urls := testURLs()

	first := agg.Compute(context.Background(), "Ronnie Runner", urls)
	second := agg.Compute(context.Background(), "Ronnie Runner", urls)

	if !first.OK() || !second.OK() || second.AV != 25 {
		t.Fatalf("Compute() = %+v then %+v, want 25 twice", first, second)
	}
	if !second.Cached {
		t.Error("second Compute() should be served from cache")
	}
	if n := fetcher.totalCalls(); n != 1 {
		t.Errorf("profile fetched %d times, want 1", n)
	}

	// misses are not cached
	agg.Compute(context.Background(), "Gary Garbled", urls)
	agg.Compute(context.Background(), "Gary Garbled", urls)
	if n := fetcher.totalCalls(); n != 3 {
		t.Errorf("total fetches = %d, want 3", n)
	}
}

func TestCache_ZeroValueSet(t *testing.T) {
	cache := &Cache{TTL: time.Hour}
	cache.Set("/players/R/RunnRo00.htm", 25)

	if got, ok := cache.Get("/players/R/RunnRo00.htm"); !ok || got != 25 {
		t.Errorf("Get() = %d, %v, want 25, true", got, ok)
	}
}
