package pathfinding

import (
	"strings"
	"testing"

	"wired/core"
)

func TestPathCache_BasicOperations(t *testing.T) {
	cache := NewPathCache(10)

	route := Route{Path: core.PathFromPoints(core.Pt(0, 0), core.Pt(20, 0)), Clear: true}
	key := PathCacheKey{Start: core.Pt(0, 0), End: core.Pt(20, 0)}
	cache.Put(key, route)

	got, found := cache.Get(key)
	if !found {
		t.Fatal("route not found in cache")
	}
	if !got.Path.Equal(route.Path) {
		t.Errorf("cached path = %v, want %v", got.Path, route.Path)
	}

	_, found = cache.Get(PathCacheKey{Start: core.Pt(1, 1), End: core.Pt(2, 2)})
	if found {
		t.Error("unexpected cache hit")
	}

	hits, misses, _, size := cache.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("Stats() = %d hits, %d misses, size %d; want 1, 1, 1", hits, misses, size)
	}
	if !strings.Contains(cache.String(), "hitRate=50.0%") {
		t.Errorf("String() = %q", cache.String())
	}
}

func TestPathCache_EvictsOldest(t *testing.T) {
	cache := NewPathCache(2)
	keys := []PathCacheKey{
		{End: core.Pt(1, 0)},
		{End: core.Pt(2, 0)},
		{End: core.Pt(3, 0)},
	}
	for _, k := range keys {
		cache.Put(k, Route{})
	}

	if _, ok := cache.Get(keys[0]); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := cache.Get(keys[2]); !ok {
		t.Error("newest entry missing")
	}
	if _, _, evictions, size := cache.Stats(); evictions != 1 || size != 2 {
		t.Errorf("evictions = %d, size = %d; want 1, 2", evictions, size)
	}

	cache.Clear()
	if _, _, _, size := cache.Stats(); size != 0 {
		t.Errorf("size after Clear() = %d", size)
	}
}

func TestHashRects(t *testing.T) {
	a := []core.Rect{core.R(0, 0, 10, 10), core.R(20, 0, 10, 10)}
	b := []core.Rect{core.R(0, 0, 10, 10), core.R(20, 0, 10, 10)}
	if HashRects(a) != HashRects(b) {
		t.Error("equal rect lists hash differently")
	}
	b[1].X = 21
	if HashRects(a) == HashRects(b) {
		t.Error("moved rect did not change the hash")
	}
}
