package scryfall

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// countingLookup counts delegated calls and replays scripted outcomes per key
type countingLookup struct {
	calls    int
	facts    map[string]*domain.CardFacts
	failures map[string]error
}

func (c *countingLookup) Lookup(ctx context.Context, name, setCode string) (*domain.CardFacts, error) {
	c.calls++
	key := name + "/" + setCode
	if err, ok := c.failures[key]; ok {
		return nil, err
	}
	if facts, ok := c.facts[key]; ok {
		return facts, nil
	}
	return nil, domain.ErrCardNotFound
}

func TestCachedLookup_MemoizesSuccesses(t *testing.T) {
	price := decimal.RequireFromString("0.12")
	next := &countingLookup{
		facts: map[string]*domain.CardFacts{
			"Abrade/vow": {Rarity: domain.RarityCommon, MarketPriceNonfoil: &price},
		},
	}

	cached, err := NewCachedLookup(next, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		facts, err := cached.Lookup(context.Background(), "Abrade", "vow")
		require.NoError(t, err)
		assert.Equal(t, domain.RarityCommon, facts.Rarity)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedLookup_MemoizesNotFound(t *testing.T) {
	next := &countingLookup{}

	cached, err := NewCachedLookup(next, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := cached.Lookup(context.Background(), "Not A Real Card", "")
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedLookup_DoesNotCacheTransientErrors(t *testing.T) {
	transient := errors.New("lookup returned status 502")
	next := &countingLookup{
		failures: map[string]error{"Abrade/vow": transient},
	}

	cached, err := NewCachedLookup(next, 8)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := cached.Lookup(context.Background(), "Abrade", "vow")
		assert.ErrorIs(t, err, transient)
	}
	assert.Equal(t, 2, next.calls)
}

func TestCachedLookup_DistinguishesPrintings(t *testing.T) {
	price := decimal.RequireFromString("1.00")
	next := &countingLookup{
		facts: map[string]*domain.CardFacts{
			"Ponder/c18": {Rarity: domain.RarityCommon, MarketPriceNonfoil: &price},
			"Ponder/m12": {Rarity: domain.RarityCommon, MarketPriceNonfoil: &price},
		},
	}

	cached, err := NewCachedLookup(next, 8)
	require.NoError(t, err)

	_, err = cached.Lookup(context.Background(), "Ponder", "c18")
	require.NoError(t, err)
	_, err = cached.Lookup(context.Background(), "Ponder", "m12")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}
