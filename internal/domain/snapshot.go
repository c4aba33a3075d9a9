package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot represents one persisted enrichment run: the coverage summary plus
// every resolved valuation. Snapshots are derived data, rebuilt from scratch
// on every run; persisting them is entirely outside the engine's contract.
type Snapshot struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Coverage  CoverageSummary
	Pairs     []Pair
}
