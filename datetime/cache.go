package datetime

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

const cacheSize = 256

var cache = struct {
	sync.Mutex
	patterns *lru.Cache
}{patterns: lru.New(cacheSize)}

// lookup returns the compiled form of pattern, compiling it on a miss. Only
// valid patterns are kept.
func lookup(pattern string) (*Pattern, error) {
	cache.Lock()
	v, ok := cache.patterns.Get(pattern)
	cache.Unlock()
	if ok {
		return v.(*Pattern), nil
	}

	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache.Lock()
	cache.patterns.Add(pattern, p)
	cache.Unlock()
	return p, nil
}
