package server

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/matzehuels/chordview/pkg/cache"
	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/observability"
)

// cachedStore serves chord lookups from the runner's cache before asking
// the backing store. Writes invalidate the cached entry.
type cachedStore struct {
	library.Store
	cache cache.Cache
	keyer cache.Keyer
}

func newCachedStore(s library.Store, c cache.Cache, k cache.Keyer) library.Store {
	if c == nil {
		return s
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	return &cachedStore{Store: s, cache: c, keyer: k}
}

func (s *cachedStore) key(name string) string {
	return s.keyer.ChordKey(strings.ToLower(strings.TrimSpace(name)))
}

func (s *cachedStore) Get(ctx context.Context, name string) (*chord.Chord, error) {
	key := s.key(name)
	hooks := observability.Cache()
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var c chord.Chord
		if err := json.Unmarshal(data, &c); err == nil && c.Validate() == nil {
			hooks.OnCacheHit(ctx, "chord")
			return &c, nil
		}
	}
	hooks.OnCacheMiss(ctx, "chord")

	c, err := s.Store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(c); err == nil {
		if s.cache.Set(ctx, key, data, cache.TTLChord) == nil {
			hooks.OnCacheSet(ctx, "chord", len(data))
		}
	}
	return c, nil
}

func (s *cachedStore) Put(ctx context.Context, c *chord.Chord) error {
	if err := s.Store.Put(ctx, c); err != nil {
		return err
	}
	return s.cache.Delete(ctx, s.key(c.Name))
}

func (s *cachedStore) Delete(ctx context.Context, name string) error {
	if err := s.Store.Delete(ctx, name); err != nil {
		return err
	}
	return s.cache.Delete(ctx, s.key(name))
}
