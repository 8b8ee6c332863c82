package pathfinding

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"wired/core"
)

// PathCacheKey identifies one planning request.
type PathCacheKey struct {
	Start, End   core.Point
	ObstacleHash uint64 // Hash of the obstacle rectangles, order-sensitive
}

// HashRects hashes an obstacle list. Identical lists hash identically.
func HashRects(rects []core.Rect) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, r := range rects {
		for _, v := range [4]float64{r.X, r.Y, r.Width, r.Height} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// PathCache stores previously planned routes for reuse. It is not safe for
// concurrent use; the planner runs on the caller's goroutine.
type PathCache struct {
	cache     map[PathCacheKey]Route
	order     []PathCacheKey
	maxSize   int
	hits      int
	misses    int
	evictions int
}

// NewPathCache creates a new path cache holding at most maxSize routes.
// A non-positive size means unbounded.
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]Route),
		maxSize: maxSize,
	}
}

// Get retrieves a route from the cache if it exists.
func (pc *PathCache) Get(key PathCacheKey) (Route, bool) {
	route, found := pc.cache[key]
	if found {
		pc.hits++
	} else {
		pc.misses++
	}
	return route, found
}

// Put stores a route, evicting the oldest entry when full.
func (pc *PathCache) Put(key PathCacheKey, route Route) {
	if _, exists := pc.cache[key]; !exists {
		if pc.maxSize > 0 && len(pc.cache) >= pc.maxSize {
			oldest := pc.order[0]
			pc.order = pc.order[1:]
			delete(pc.cache, oldest)
			pc.evictions++
		}
		pc.order = append(pc.order, key)
	}
	pc.cache[key] = route
}

// Clear removes all entries and resets the counters.
func (pc *PathCache) Clear() {
	pc.cache = make(map[PathCacheKey]Route)
	pc.order = nil
	pc.hits, pc.misses, pc.evictions = 0, 0, 0
}

// Stats returns cache statistics.
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	return pc.hits, pc.misses, pc.evictions, len(pc.cache)
}

// String returns a string representation of cache statistics.
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}
