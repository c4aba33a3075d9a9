package scryfall

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// cacheEntry memoizes one lookup outcome. NotFound is cached too, so repeated
// misses for the same printing cost one request per run.
type cacheEntry struct {
	facts    *domain.CardFacts
	notFound bool
}

// CachedLookup wraps a CardLookup with an LRU memo. The valuation engine never
// caches lookups itself; this wrapper is the external cache allowed to sit in
// front of the collaborator.
type CachedLookup struct {
	next  domain.CardLookup
	cache *lru.Cache
}

// NewCachedLookup creates a memoizing wrapper around next.
// size bounds the number of cached printings.
func NewCachedLookup(next domain.CardLookup, size int) (*CachedLookup, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %w", err)
	}
	return &CachedLookup{next: next, cache: cache}, nil
}

// Lookup returns the memoized outcome when present, otherwise delegates.
// Transient errors are not cached; only successes and not-found outcomes are.
func (c *CachedLookup) Lookup(ctx context.Context, name, setCode string) (*domain.CardFacts, error) {
	key := name + "\x1f" + setCode

	if cached, ok := c.cache.Get(key); ok {
		entry := cached.(cacheEntry)
		if entry.notFound {
			return nil, domain.ErrCardNotFound
		}
		return entry.facts, nil
	}

	facts, err := c.next.Lookup(ctx, name, setCode)
	if errors.Is(err, domain.ErrCardNotFound) {
		c.cache.Add(key, cacheEntry{notFound: true})
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, cacheEntry{facts: facts})
	return facts, nil
}
