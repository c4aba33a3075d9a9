package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrCardNotFound is returned by a CardLookup when the remote card database
// has no entry for the requested printing
var ErrCardNotFound = errors.New("card not found")

// CardFacts is what a remote card-data lookup knows about one printing.
// Price fields are nil when the provider has no listing for that finish.
type CardFacts struct {
	Rarity             Rarity
	MarketPriceNonfoil *decimal.Decimal
	MarketPriceFoil    *decimal.Decimal
}

// CardLookup defines the interface for the remote card-data collaborator.
// Lookups are assumed idempotent and side-effect-free; the engine itself never
// retries or caches them (a caching wrapper may sit in front).
type CardLookup interface {
	// Lookup fetches facts for a printing by exact name and set code.
	// Returns ErrCardNotFound when the provider has no such printing.
	Lookup(ctx context.Context, name, setCode string) (*CardFacts, error)
}

// SnapshotRepository defines the interface for snapshot persistence operations
type SnapshotRepository interface {
	// Save persists an enrichment run snapshot with all its valuations
	Save(ctx context.Context, snapshot *Snapshot) error
}
