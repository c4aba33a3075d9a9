package backfill

import (
	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/pricetable"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/tier"
)

// Resolve produces the estimated market value for a single card record.
// Resolution order (first applicable wins):
//  1. Authoritative: the record carries a market price for its own foil state.
//     Used verbatim.
//  2. Sibling-derived: the opposite foil-state price is present. Estimate is
//     sibling price x table multiplier for (rarity, record foil state).
//  3. Table default: no price data at all. Estimate is the rarity's floor
//     price x table multiplier.
//
// In every path the result is clamped to the rarity's floor price, classified
// into a tier, and combined with the count into a total value. Currency
// rounding (2 decimal places, half-up) happens exactly once, on the total.
//
// Pure function over its inputs; the record is never modified and no record
// is ever rejected - unresolvable records get the table default.
func Resolve(record domain.CardRecord, table pricetable.Table) domain.ResolvedValuation {
	row := table.Lookup(record.Rarity, record.Foil)
	floor := table.FloorPrice(record.Rarity)

	var unitPrice decimal.Decimal
	var provenance domain.Provenance

	if own := record.MarketPrice(record.Foil); own != nil {
		unitPrice = *own
		provenance = domain.ProvenanceAuthoritative
	} else if sibling := record.MarketPrice(!record.Foil); sibling != nil {
		unitPrice = sibling.Mul(row.Multiplier)
		provenance = domain.ProvenanceEstimatedFromSibling
	} else {
		unitPrice = floor.Mul(row.Multiplier)
		provenance = domain.ProvenanceEstimatedFromTable
	}

	// Floor invariant: unit price is never below the rarity's floor
	if unitPrice.LessThan(floor) {
		unitPrice = floor
	}

	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative prices handled here
	totalValue := unitPrice.Mul(decimal.NewFromInt(int64(record.Count))).Round(2)

	return domain.ResolvedValuation{
		UnitPrice:  unitPrice,
		Provenance: provenance,
		Tier:       tier.Classify(unitPrice),
		TotalValue: totalValue,
	}
}
