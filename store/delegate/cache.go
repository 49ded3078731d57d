package delegate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dealer/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache cache delegation lookups for exp
func Cache(store core.IDelegateStore, exp time.Duration) core.IDelegateStore {
	return &cacheDelegateStore{
		IDelegateStore: store,
		cache:          gcache.New(4096).LRU().Expiration(exp).Build(),
		sf:             &singleflight.Group{},
		generations:    map[string]uint64{},
	}
}

type cacheDelegateStore struct {
	core.IDelegateStore
	cache gcache.Cache
	sf    *singleflight.Group

	// generations bumped by every write, a lookup started before a write
	// does not fill the cache
	mu          sync.Mutex
	generations map[string]uint64
}

func (s *cacheDelegateStore) Add(ctx context.Context, account, delegate string) error {
	if err := s.IDelegateStore.Add(ctx, account, delegate); err != nil {
		return err
	}

	s.invalidate(s.key(account, delegate))
	return nil
}

func (s *cacheDelegateStore) Revoke(ctx context.Context, account, delegate string) error {
	if err := s.IDelegateStore.Revoke(ctx, account, delegate); err != nil {
		return err
	}

	s.invalidate(s.key(account, delegate))
	return nil
}

func (s *cacheDelegateStore) Has(ctx context.Context, account, delegate string) (bool, error) {
	key := s.key(account, delegate)
	if v, err := s.cache.Get(key); err == nil {
		if ok, is := v.(bool); is {
			return ok, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		gen := s.generation(key)
		ok, err := s.IDelegateStore.Has(ctx, account, delegate)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generations[key] == gen {
			_ = s.cache.Set(key, ok)
		}
		s.mu.Unlock()

		return ok, nil
	})

	if err != nil {
		return false, err
	}

	return v.(bool), nil
}

func (s *cacheDelegateStore) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generations[key]
}

func (s *cacheDelegateStore) invalidate(key string) {
	s.mu.Lock()
	s.generations[key]++
	s.cache.Remove(key)
	s.mu.Unlock()

	s.sf.Forget(key)
}

func (s *cacheDelegateStore) key(account, delegate string) string {
	return fmt.Sprintf("delegate:%s:%s", account, delegate)
}
