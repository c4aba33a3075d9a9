package valuation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// Dimension selects one grouping attribute of a (record, valuation) pair
type Dimension string

const (
	DimensionSetCode   Dimension = "set_code"
	DimensionRarity    Dimension = "rarity"
	DimensionFoil      Dimension = "foil"
	DimensionTier      Dimension = "tier"
	DimensionCondition Dimension = "condition"
)

// ParseDimension validates a dimension selector name.
// An unrecognized name is the only fatal condition the engine raises: it is a
// configuration error, not a data error.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionSetCode, DimensionRarity, DimensionFoil, DimensionTier, DimensionCondition:
		return Dimension(s), nil
	}
	return "", fmt.Errorf("unrecognized group-by dimension %q", s)
}

// Mode selects which per-record value a report aggregates.
// Per-total answers "what is this slice of the collection worth"; per-unit
// answers "what is the market price per copy".
type Mode string

const (
	ModeTotalValue Mode = "total_value"
	ModeUnitPrice  Mode = "unit_price"
)

// ParseMode validates an aggregation mode name. Empty input defaults to
// ModeTotalValue.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTotalValue, ModeUnitPrice:
		return Mode(s), nil
	case "":
		return ModeTotalValue, nil
	}
	return "", fmt.Errorf("unrecognized aggregation mode %q", s)
}

// Aggregate groups pairs along the requested dimensions and computes summary
// statistics per group.
//
// Grouping order affects only key shape, never values. Buckets are returned
// sorted by descending sum (ties broken by ascending key) for deterministic
// output. An empty groupBy produces a single bucket covering all pairs.
//
// Statistics use the population of per-pair values selected by mode within
// each bucket. Stdev uses the sample (n-1) formula and is zero by convention
// for single-element buckets. Median averages the two middle values when the
// bucket count is even.
func Aggregate(pairs []domain.Pair, groupBy []Dimension, mode Mode) ([]domain.AggregateBucket, error) {
	for _, dim := range groupBy {
		if _, err := ParseDimension(string(dim)); err != nil {
			return nil, err
		}
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	type accumulator struct {
		key    []string
		values []decimal.Decimal
	}

	groups := make(map[string]*accumulator)
	for _, pair := range pairs {
		key := make([]string, len(groupBy))
		for i, dim := range groupBy {
			key[i] = dimensionValue(pair, dim)
		}

		// Unit separator keeps composite map keys unambiguous
		mapKey := strings.Join(key, "\x1f")
		acc, ok := groups[mapKey]
		if !ok {
			acc = &accumulator{key: key}
			groups[mapKey] = acc
		}
		acc.values = append(acc.values, valueFor(pair, mode))
	}

	buckets := make([]domain.AggregateBucket, 0, len(groups))
	for _, acc := range groups {
		buckets = append(buckets, summarize(acc.key, acc.values))
	}

	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Sum.Equal(buckets[j].Sum) {
			return buckets[i].Sum.GreaterThan(buckets[j].Sum)
		}
		return strings.Join(buckets[i].Key, "\x1f") < strings.Join(buckets[j].Key, "\x1f")
	})

	return buckets, nil
}

// dimensionValue extracts one dimension value from a pair.
// groupBy is validated before grouping starts, so dim is always recognized here.
func dimensionValue(pair domain.Pair, dim Dimension) string {
	switch dim {
	case DimensionSetCode:
		return pair.Record.SetCode
	case DimensionRarity:
		return string(pair.Record.Rarity)
	case DimensionFoil:
		if pair.Record.Foil {
			return "foil"
		}
		return "nonfoil"
	case DimensionTier:
		return string(pair.Valuation.Tier)
	case DimensionCondition:
		return string(pair.Record.Condition)
	}
	return ""
}

// valueFor selects the per-pair value a report aggregates
func valueFor(pair domain.Pair, mode Mode) decimal.Decimal {
	if mode == ModeUnitPrice {
		return pair.Valuation.UnitPrice
	}
	return pair.Valuation.TotalValue
}

// summarize computes one bucket's statistics over its raw values
func summarize(key []string, values []decimal.Decimal) domain.AggregateBucket {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LessThan(sorted[j])
	})

	n := len(sorted)
	sum := decimal.Zero
	for _, v := range sorted {
		sum = sum.Add(v)
	}

	mean := sum.Div(decimal.NewFromInt(int64(n)))

	var median decimal.Decimal
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
	}

	return domain.AggregateBucket{
		Key:    key,
		Count:  n,
		Sum:    sum,
		Mean:   mean,
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Stdev:  sampleStdev(sorted, mean),
	}
}

// sampleStdev computes the sample (n-1) standard deviation.
// Single-element buckets yield zero by convention, not NaN.
// The square root forces a float64 round trip; everything else stays decimal.
func sampleStdev(values []decimal.Decimal, mean decimal.Decimal) decimal.Decimal {
	n := len(values)
	if n < 2 {
		return decimal.Zero
	}

	meanF := mean.InexactFloat64()
	var sumSquares float64
	for _, v := range values {
		diff := v.InexactFloat64() - meanF
		sumSquares += diff * diff
	}

	return decimal.NewFromFloat(math.Sqrt(sumSquares / float64(n-1)))
}
