package domain

import (
	"github.com/shopspring/decimal"
)

// AggregateBucket holds the summary statistics for one group key in a report
type AggregateBucket struct {
	Key    []string // One value per group-by dimension, in selector order
	Count  int
	Sum    decimal.Decimal
	Mean   decimal.Decimal
	Median decimal.Decimal
	Min    decimal.Decimal
	Max    decimal.Decimal
	Stdev  decimal.Decimal // Sample (n-1) formula; zero by convention when Count == 1
}

// CoverageSummary reports how much of a run's value is trustworthy versus
// inferred. It is a first-class output of an enrichment run, not a log line:
// callers build UI and export decisions on it.
type CoverageSummary struct {
	// Provenance counts over all resolved records
	Authoritative        int
	EstimatedFromSibling int
	EstimatedFromTable   int

	// Data-quality warnings (non-fatal)
	UnknownRarity int

	// Collection summary
	TotalCards    int             // Sum of record counts
	UniqueCards   int             // Number of records
	PurchaseValue decimal.Decimal // Sum of purchase_price x count where present
	MarketValue   decimal.Decimal // Sum of resolved total values
	Appreciation  decimal.Decimal // MarketValue - PurchaseValue
}

// Resolved returns the total number of records the summary covers
func (c *CoverageSummary) Resolved() int {
	return c.Authoritative + c.EstimatedFromSibling + c.EstimatedFromTable
}
