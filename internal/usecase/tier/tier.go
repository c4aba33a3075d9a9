package tier

import (
	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// Tier thresholds, inclusive lower bound / exclusive upper bound:
// bulk [0,1), low [1,5), mid [5,20), high [20,100), ultra [100,inf)
var (
	thresholdLow   = decimal.NewFromInt(1)
	thresholdMid   = decimal.NewFromInt(5)
	thresholdHigh  = decimal.NewFromInt(20)
	thresholdUltra = decimal.NewFromInt(100)
)

// Classify maps a unit price to its value tier.
// Pure, total function over non-negative prices; negative input is a caller
// contract violation and is not checked here.
func Classify(price decimal.Decimal) domain.Tier {
	switch {
	case price.LessThan(thresholdLow):
		return domain.TierBulk
	case price.LessThan(thresholdMid):
		return domain.TierLow
	case price.LessThan(thresholdHigh):
		return domain.TierMid
	case price.LessThan(thresholdUltra):
		return domain.TierHigh
	default:
		return domain.TierUltra
	}
}
