package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"storefront/internal/cache"
)

// cacheTTL bounds how stale any cached read may get.
const cacheTTL = 5 * time.Minute

// cacheLookup loads key into dest. A miss, a nil cache, or a decode failure
// all report false; cache problems never fail a read path.
func cacheLookup(c cache.Cache, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("cache decode %s: %v", key, err)
		return false
	}
	return true
}

// cacheStore writes value under key with the default TTL, best effort.
func cacheStore(c cache.Cache, key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache encode %s: %v", key, err)
		return
	}
	if err := c.Set(context.Background(), key, data, cacheTTL); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

// cacheEvict drops the given keys, best effort.
func cacheEvict(c cache.Cache, keys ...string) {
	if c == nil {
		return
	}
	if err := c.Delete(context.Background(), keys...); err != nil {
		log.Printf("cache evict %v: %v", keys, err)
	}
}

// keySet remembers parameterized cache keys (page listings, report variants)
// so a write can evict every variant that has been handed out.
type keySet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (s *keySet) add(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	s.keys[key] = struct{}{}
}

// drain returns every remembered key and forgets them.
func (s *keySet) drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.keys))
	for key := range s.keys {
		keys = append(keys, key)
	}
	s.keys = nil
	return keys
}
