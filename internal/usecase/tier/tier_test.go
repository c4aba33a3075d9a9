package tier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

func TestClassify_Boundaries(t *testing.T) {
	// Inclusive lower bound, exclusive upper bound per tier
	tests := []struct {
		price string
		want  domain.Tier
	}{
		{"0", domain.TierBulk},
		{"0.99", domain.TierBulk},
		{"1.00", domain.TierLow},
		{"4.999", domain.TierLow},
		{"5.00", domain.TierMid},
		{"19.99", domain.TierMid},
		{"20.00", domain.TierHigh},
		{"99.999", domain.TierHigh},
		{"100.00", domain.TierUltra},
		{"12500", domain.TierUltra},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			price, err := decimal.NewFromString(tt.price)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Classify(price))
		})
	}
}
