package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Rarity represents the printed rarity of a card
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
	RarityUnknown  Rarity = "unknown"
)

// ParseRarity normalizes a raw rarity string to a Rarity.
// Unrecognized or empty input falls back to RarityUnknown; the second return
// value reports whether the input was recognized, so callers can surface a
// data-quality warning without treating the record as an error.
func ParseRarity(s string) (Rarity, bool) {
	switch Rarity(strings.ToLower(strings.TrimSpace(s))) {
	case RarityCommon:
		return RarityCommon, true
	case RarityUncommon:
		return RarityUncommon, true
	case RarityRare:
		return RarityRare, true
	case RarityMythic:
		return RarityMythic, true
	}
	return RarityUnknown, false
}

// Condition represents the physical condition of a card
type Condition string

const (
	ConditionMint        Condition = "mint"
	ConditionNearMint    Condition = "near_mint"
	ConditionExcellent   Condition = "excellent"
	ConditionGood        Condition = "good"
	ConditionLightPlayed Condition = "light_played"
	ConditionPlayed      Condition = "played"
	ConditionPoor        Condition = "poor"
)

// conditionAliases maps normalized export vocabulary (Moxfield, Deckbox) onto
// the canonical condition set.
var conditionAliases = map[string]Condition{
	"mint":              ConditionMint,
	"near_mint":         ConditionNearMint,
	"nm":                ConditionNearMint,
	"excellent":         ConditionExcellent,
	"good":              ConditionGood,
	"light_played":      ConditionLightPlayed,
	"lightly_played":    ConditionLightPlayed,
	"played":            ConditionPlayed,
	"moderately_played": ConditionPlayed,
	"heavily_played":    ConditionPlayed,
	"poor":              ConditionPoor,
	"damaged":           ConditionPoor,
}

// ParseCondition normalizes a raw condition string to a Condition.
// Unrecognized input falls back to ConditionNearMint; the second return value
// reports whether the input was recognized.
func ParseCondition(s string) (Condition, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	if cond, ok := conditionAliases[key]; ok {
		return cond, true
	}
	return ConditionNearMint, false
}

// CardRecord represents one line of a collection export in the domain layer.
// It is an immutable input unit: the engine never writes to it, estimates live
// only in ResolvedValuation.
type CardRecord struct {
	Name               string
	SetCode            string
	Count              int
	Foil               bool
	Rarity             Rarity
	Condition          Condition
	PurchasePrice      *decimal.Decimal // What the owner paid; never overwritten
	MarketPriceNonfoil *decimal.Decimal // nil means missing, never zero
	MarketPriceFoil    *decimal.Decimal // nil means missing, never zero
}

// MarketPrice returns the market price for the requested foil state, or nil
// when that price is missing. Passing record.Foil yields the record's own-state
// price; passing !record.Foil yields the sibling price.
func (c *CardRecord) MarketPrice(foil bool) *decimal.Decimal {
	if foil {
		return c.MarketPriceFoil
	}
	return c.MarketPriceNonfoil
}

// Validate ensures the card record adheres to domain rules
// Returns an error if validation fails
func (c *CardRecord) Validate() error {
	if c.Name == "" {
		return errors.New("card name cannot be empty")
	}

	if c.Count < 1 {
		return errors.New("card count must be at least 1")
	}

	// Price fields are optional but never negative
	for _, price := range []*decimal.Decimal{c.PurchasePrice, c.MarketPriceNonfoil, c.MarketPriceFoil} {
		if price != nil && price.IsNegative() {
			return errors.New("card price fields cannot be negative")
		}
	}

	return nil
}
