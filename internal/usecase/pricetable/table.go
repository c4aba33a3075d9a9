package pricetable

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// Row holds the estimation parameters for one (rarity, foil) combination
type Row struct {
	Multiplier decimal.Decimal
	FloorPrice decimal.Decimal // Minimum plausible market price for the rarity
}

// RaritySpec describes one rarity's estimation parameters when building a table
type RaritySpec struct {
	FoilMultiplier    decimal.Decimal
	NonfoilMultiplier decimal.Decimal
	FloorPrice        decimal.Decimal
}

// Table is a static mapping from (rarity, foil) to multiplier and floor price.
// The numeric policy lives here, not in resolution logic, so it can change
// without touching the Backfill Engine. Tables are immutable once built.
type Table struct {
	rows map[rowKey]Row
}

type rowKey struct {
	rarity domain.Rarity
	foil   bool
}

// Default returns the baseline table:
//
//	rarity   | foil mult | nonfoil mult | floor
//	common   | 2.0       | 1.0          | 0.05
//	uncommon | 3.0       | 1.0          | 0.10
//	rare     | 4.0       | 1.0          | 0.25
//	mythic   | 5.4       | 1.0          | 0.50
//
// RarityUnknown resolves through the common row as a conservative default.
func Default() Table {
	table, err := New(map[domain.Rarity]RaritySpec{
		domain.RarityCommon: {
			FoilMultiplier:    decimal.NewFromFloat(2.0),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.05),
		},
		domain.RarityUncommon: {
			FoilMultiplier:    decimal.NewFromFloat(3.0),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.10),
		},
		domain.RarityRare: {
			FoilMultiplier:    decimal.NewFromFloat(4.0),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.25),
		},
		domain.RarityMythic: {
			FoilMultiplier:    decimal.NewFromFloat(5.4),
			NonfoilMultiplier: decimal.NewFromFloat(1.0),
			FloorPrice:        decimal.NewFromFloat(0.50),
		},
	})
	if err != nil {
		// The baseline is a compile-time constant; failing to build it is a bug
		panic(err)
	}
	return table
}

// New builds a table from per-rarity specs.
// Specs for RarityUnknown are rejected: unknown always aliases the common row.
// Returns an error if a spec carries negative values or common is missing.
func New(specs map[domain.Rarity]RaritySpec) (Table, error) {
	rows := make(map[rowKey]Row, len(specs)*2)

	for rarity, spec := range specs {
		if rarity == domain.RarityUnknown {
			return Table{}, errors.New("unknown rarity cannot carry its own table row")
		}

		if spec.FoilMultiplier.IsNegative() || spec.NonfoilMultiplier.IsNegative() || spec.FloorPrice.IsNegative() {
			return Table{}, errors.New("table multipliers and floor prices cannot be negative")
		}

		rows[rowKey{rarity: rarity, foil: true}] = Row{Multiplier: spec.FoilMultiplier, FloorPrice: spec.FloorPrice}
		rows[rowKey{rarity: rarity, foil: false}] = Row{Multiplier: spec.NonfoilMultiplier, FloorPrice: spec.FloorPrice}
	}

	if _, ok := rows[rowKey{rarity: domain.RarityCommon, foil: false}]; !ok {
		return Table{}, errors.New("table must carry a common row (it backs unknown rarity)")
	}

	return Table{rows: rows}, nil
}

// Lookup returns the row for a (rarity, foil) combination.
// RarityUnknown resolves through the common row.
func (t Table) Lookup(rarity domain.Rarity, foil bool) Row {
	if rarity == domain.RarityUnknown {
		rarity = domain.RarityCommon
	}
	return t.rows[rowKey{rarity: rarity, foil: foil}]
}

// FloorPrice returns the floor price for a rarity.
// RarityUnknown resolves through the common row.
func (t Table) FloorPrice(rarity domain.Rarity) decimal.Decimal {
	return t.Lookup(rarity, false).FloorPrice
}
