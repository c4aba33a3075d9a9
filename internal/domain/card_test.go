package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseRarity(t *testing.T) {
	tests := []struct {
		input      string
		want       Rarity
		recognized bool
	}{
		{"common", RarityCommon, true},
		{"Uncommon", RarityUncommon, true},
		{"RARE", RarityRare, true},
		{" mythic ", RarityMythic, true},
		{"special", RarityUnknown, false},
		{"", RarityUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rarity, ok := ParseRarity(tt.input)
			assert.Equal(t, tt.want, rarity)
			assert.Equal(t, tt.recognized, ok)
		})
	}
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		input      string
		want       Condition
		recognized bool
	}{
		{"Near Mint", ConditionNearMint, true},
		{"NM", ConditionNearMint, true},
		{"Lightly Played", ConditionLightPlayed, true},
		{"Moderately Played", ConditionPlayed, true},
		{"Damaged", ConditionPoor, true},
		{"pristine", ConditionNearMint, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			condition, ok := ParseCondition(tt.input)
			assert.Equal(t, tt.want, condition)
			assert.Equal(t, tt.recognized, ok)
		})
	}
}

func TestCardRecord_MarketPrice(t *testing.T) {
	nonfoil := decimal.RequireFromString("1.00")
	foil := decimal.RequireFromString("4.00")
	record := CardRecord{MarketPriceNonfoil: &nonfoil, MarketPriceFoil: &foil}

	assert.True(t, record.MarketPrice(false).Equal(nonfoil))
	assert.True(t, record.MarketPrice(true).Equal(foil))

	empty := CardRecord{}
	assert.Nil(t, empty.MarketPrice(false))
	assert.Nil(t, empty.MarketPrice(true))
}

func TestCardRecord_Validate(t *testing.T) {
	valid := CardRecord{Name: "Abrade", Count: 1}
	assert.NoError(t, valid.Validate())

	noName := CardRecord{Count: 1}
	assert.Error(t, noName.Validate())

	zeroCount := CardRecord{Name: "Abrade", Count: 0}
	assert.Error(t, zeroCount.Validate())

	negative := decimal.RequireFromString("-1")
	negativePrice := CardRecord{Name: "Abrade", Count: 1, MarketPriceFoil: &negative}
	assert.Error(t, negativePrice.Validate())
}

func TestResolvedValuation_Validate(t *testing.T) {
	valid := ResolvedValuation{
		UnitPrice:  decimal.RequireFromString("1.00"),
		Provenance: ProvenanceAuthoritative,
		Tier:       TierLow,
		TotalValue: decimal.RequireFromString("2.00"),
	}
	assert.NoError(t, valid.Validate())

	badProvenance := valid
	badProvenance.Provenance = "guessed"
	assert.Error(t, badProvenance.Validate())

	negative := valid
	negative.UnitPrice = decimal.RequireFromString("-0.01")
	assert.Error(t, negative.Validate())
}
