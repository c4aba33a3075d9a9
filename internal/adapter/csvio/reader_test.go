package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

func TestReadCollection_MoxfieldExport(t *testing.T) {
	input := strings.Join([]string{
		"Count,Name,Edition,Foil,Rarity,Condition,Purchase Price,Market USD,Market USD Foil",
		"4,Abrade,VOW,,common,Near Mint,$0.25,0.12,0.95",
		"1,Old Gnawbone,AFR,foil,mythic,Lightly Played,,\"1,150.00\",",
	}, "\n")

	records, warnings, err := ReadCollection(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 2)

	abrade := records[0]
	assert.Equal(t, "Abrade", abrade.Name)
	assert.Equal(t, "VOW", abrade.SetCode)
	assert.Equal(t, 4, abrade.Count)
	assert.False(t, abrade.Foil)
	assert.Equal(t, domain.RarityCommon, abrade.Rarity)
	assert.Equal(t, domain.ConditionNearMint, abrade.Condition)
	require.NotNil(t, abrade.PurchasePrice)
	assert.Equal(t, "0.25", abrade.PurchasePrice.String())
	require.NotNil(t, abrade.MarketPriceNonfoil)
	assert.Equal(t, "0.12", abrade.MarketPriceNonfoil.String())
	require.NotNil(t, abrade.MarketPriceFoil)
	assert.Equal(t, "0.95", abrade.MarketPriceFoil.String())

	gnawbone := records[1]
	assert.True(t, gnawbone.Foil)
	assert.Equal(t, domain.RarityMythic, gnawbone.Rarity)
	assert.Equal(t, domain.ConditionLightPlayed, gnawbone.Condition)
	assert.Nil(t, gnawbone.PurchasePrice)
	require.NotNil(t, gnawbone.MarketPriceNonfoil)
	assert.Equal(t, "1150", gnawbone.MarketPriceNonfoil.String())
	assert.Nil(t, gnawbone.MarketPriceFoil)
}

func TestReadCollection_HeaderAliases(t *testing.T) {
	input := strings.Join([]string{
		"Name,Set Code,Quantity,USD Price,USD Foil Price",
		"Ponder,C18,2,0.85,3.20",
	}, "\n")

	records, warnings, err := ReadCollection(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)

	assert.Equal(t, "C18", records[0].SetCode)
	assert.Equal(t, 2, records[0].Count)
	require.NotNil(t, records[0].MarketPriceNonfoil)
	assert.Equal(t, "0.85", records[0].MarketPriceNonfoil.String())
	require.NotNil(t, records[0].MarketPriceFoil)
	assert.Equal(t, "3.2", records[0].MarketPriceFoil.String())
}

func TestReadCollection_FoilMarkers(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"foil", true},
		{"etched", true},
		{"Yes", true},
		{"true", true},
		{"1", true},
		{"", false},
		{"false", false},
		{"no", false},
		{"0", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			input := "Name,Foil\nAbrade," + tt.value
			records, _, err := ReadCollection(strings.NewReader(input))
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Foil)
		})
	}
}

func TestReadCollection_BadValuesWarnWithoutDroppingRows(t *testing.T) {
	input := strings.Join([]string{
		"Name,Count,Rarity,Condition,Market USD",
		"Abrade,zero,special,pristine,-0.10",
		"Ponder,,common,,n/a",
	}, "\n")

	records, warnings, err := ReadCollection(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Bad fields degrade to defaults, never to dropped rows or zero prices.
	assert.Equal(t, 1, records[0].Count)
	assert.Equal(t, domain.RarityUnknown, records[0].Rarity)
	assert.Equal(t, domain.ConditionNearMint, records[0].Condition)
	assert.Nil(t, records[0].MarketPriceNonfoil)

	assert.Equal(t, 1, records[1].Count)
	assert.Nil(t, records[1].MarketPriceNonfoil)

	require.Len(t, warnings, 5)
	assert.Equal(t, 2, warnings[0].Line)
	assert.Contains(t, warnings[3].Message, "negative price")
	assert.Contains(t, warnings[4].Message, "unparseable price")
}

func TestReadCollection_EmptyRarityIsUnknownWithoutWarning(t *testing.T) {
	input := "Name,Rarity\nAbrade,"

	records, warnings, err := ReadCollection(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.RarityUnknown, records[0].Rarity)
	assert.Empty(t, warnings)
}

func TestReadCollection_MissingNameColumn(t *testing.T) {
	input := "Count,Edition\n4,VOW"

	_, _, err := ReadCollection(strings.NewReader(input))
	assert.ErrorContains(t, err, "no Name column")
}

func TestReadCollection_EmptyInput(t *testing.T) {
	records, warnings, err := ReadCollection(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, records)
	assert.Nil(t, warnings)
}
