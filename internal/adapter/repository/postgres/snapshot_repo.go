package postgres

import (
	"context"
	"fmt"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save persists a snapshot header and all its valuations in a database transaction
func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertSnapshotQuery := `
		INSERT INTO snapshots (
			id, created_at,
			authoritative, estimated_from_sibling, estimated_from_table, unknown_rarity,
			total_cards, unique_cards, purchase_value, market_value, appreciation
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	coverage := snapshot.Coverage
	_, err = dbTx.ExecContext(ctx, insertSnapshotQuery,
		snapshot.ID,
		snapshot.CreatedAt,
		coverage.Authoritative,
		coverage.EstimatedFromSibling,
		coverage.EstimatedFromTable,
		coverage.UnknownRarity,
		coverage.TotalCards,
		coverage.UniqueCards,
		coverage.PurchaseValue.String(),
		coverage.MarketValue.String(),
		coverage.Appreciation.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	insertValuationQuery := `
		INSERT INTO snapshot_valuations (
			snapshot_id, name, set_code, count, foil, rarity, condition,
			unit_price, provenance, tier, total_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, pair := range snapshot.Pairs {
		record := pair.Record
		valuation := pair.Valuation

		_, err = dbTx.ExecContext(ctx, insertValuationQuery,
			snapshot.ID,
			record.Name,
			record.SetCode,
			record.Count,
			record.Foil,
			string(record.Rarity),
			string(record.Condition),
			valuation.UnitPrice.String(),
			string(valuation.Provenance),
			string(valuation.Tier),
			valuation.TotalValue.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot valuation: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
