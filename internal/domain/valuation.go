package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Provenance indicates whether a resolved price came from real market data or
// was estimated, and by which rule
type Provenance string

const (
	ProvenanceAuthoritative        Provenance = "authoritative"
	ProvenanceEstimatedFromSibling Provenance = "estimated_from_sibling"
	ProvenanceEstimatedFromTable   Provenance = "estimated_from_table"
)

// Tier represents the value tier of a resolved unit price
type Tier string

const (
	TierBulk  Tier = "bulk"
	TierLow   Tier = "low"
	TierMid   Tier = "mid"
	TierHigh  Tier = "high"
	TierUltra Tier = "ultra"
)

// ResolvedValuation is the engine output for a single CardRecord.
// UnitPrice is the price actually used for totals; TotalValue is
// UnitPrice x Count rounded to currency precision exactly once.
type ResolvedValuation struct {
	UnitPrice  decimal.Decimal
	Provenance Provenance
	Tier       Tier
	TotalValue decimal.Decimal
}

// Validate ensures the valuation adheres to domain rules
// Returns an error if validation fails
func (v *ResolvedValuation) Validate() error {
	if v.UnitPrice.IsNegative() {
		return errors.New("unit price cannot be negative")
	}

	if v.TotalValue.IsNegative() {
		return errors.New("total value cannot be negative")
	}

	switch v.Provenance {
	case ProvenanceAuthoritative, ProvenanceEstimatedFromSibling, ProvenanceEstimatedFromTable:
	default:
		return errors.New("provenance must be authoritative, estimated_from_sibling, or estimated_from_table")
	}

	return nil
}

// Pair couples a card record with its resolved valuation.
// Every CardRecord yields exactly one Pair per enrichment run.
type Pair struct {
	Record    CardRecord
	Valuation ResolvedValuation
}
