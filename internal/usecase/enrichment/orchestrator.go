package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/backfill"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/pricetable"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/valuation"
)

// View configures one report over the enriched batch
type View struct {
	Name    string
	GroupBy []valuation.Dimension
	Mode    valuation.Mode
}

// Report is the aggregated output of one configured view
type Report struct {
	Name    string
	GroupBy []valuation.Dimension
	Mode    valuation.Mode
	Buckets []domain.AggregateBucket
}

// Result is the full output of one enrichment run
type Result struct {
	Pairs    []domain.Pair
	Reports  []Report
	Coverage domain.CoverageSummary
}

// Orchestrator coordinates the Backfill Engine and the Valuation Aggregator
// over a whole collection snapshot
type Orchestrator struct {
	Table   pricetable.Table
	Views   []View
	Workers int
	Logger  *slog.Logger
}

// NewOrchestrator creates a new Orchestrator instance.
// workers bounds the number of parallel resolution goroutines; values below 1
// fall back to serial resolution.
func NewOrchestrator(table pricetable.Table, views []View, workers int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		Table:   table,
		Views:   views,
		Workers: workers,
		Logger:  logger,
	}
}

// Run processes every record exactly once through the Backfill Engine, then
// aggregates the full pair set for each configured view.
//
// Record resolution has no cross-record dependency, so the batch is
// partitioned across workers; each worker writes to a disjoint slice range,
// so no locking is needed and the output order matches the input order.
// Aggregation runs once over the complete pair set.
//
// An empty batch returns an empty result, not an error. The only error path
// is a misconfigured view (unrecognized dimension or mode).
func (o *Orchestrator) Run(ctx context.Context, records []domain.CardRecord) (*Result, error) {
	pairs := make([]domain.Pair, len(records))

	g, _ := errgroup.WithContext(ctx)
	for start, end := range partitions(len(records), o.Workers) {
		start, end := start, end // per-iteration copies for Go <1.22 loop semantics
		g.Go(func() error {
			for i := start; i < end; i++ {
				pairs[i] = domain.Pair{
					Record:    records[i],
					Valuation: backfill.Resolve(records[i], o.Table),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	coverage := summarizeCoverage(pairs)
	if coverage.UnknownRarity > 0 {
		o.Logger.Warn("records with unknown rarity estimated via common row",
			slog.Int("records", coverage.UnknownRarity))
	}

	reports := make([]Report, 0, len(o.Views))
	for _, view := range o.Views {
		buckets, err := valuation.Aggregate(pairs, view.GroupBy, view.Mode)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", view.Name, err)
		}
		reports = append(reports, Report{
			Name:    view.Name,
			GroupBy: view.GroupBy,
			Mode:    view.Mode,
			Buckets: buckets,
		})
	}

	o.Logger.Info("enrichment run complete",
		slog.Int("records", len(records)),
		slog.Int("authoritative", coverage.Authoritative),
		slog.Int("estimated_from_sibling", coverage.EstimatedFromSibling),
		slog.Int("estimated_from_table", coverage.EstimatedFromTable),
	)

	return &Result{
		Pairs:    pairs,
		Reports:  reports,
		Coverage: coverage,
	}, nil
}

// partitions splits n items into at most workers contiguous [start, end)
// ranges of near-equal size
func partitions(n, workers int) map[int]int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	ranges := make(map[int]int, workers)
	for w := 0; w < workers; w++ {
		start := w * n / workers
		end := (w + 1) * n / workers
		if start < end {
			ranges[start] = end
		}
	}
	return ranges
}

// summarizeCoverage derives the coverage summary from a resolved pair set
func summarizeCoverage(pairs []domain.Pair) domain.CoverageSummary {
	coverage := domain.CoverageSummary{
		UniqueCards: len(pairs),
	}

	for _, pair := range pairs {
		switch pair.Valuation.Provenance {
		case domain.ProvenanceAuthoritative:
			coverage.Authoritative++
		case domain.ProvenanceEstimatedFromSibling:
			coverage.EstimatedFromSibling++
		case domain.ProvenanceEstimatedFromTable:
			coverage.EstimatedFromTable++
		}

		if pair.Record.Rarity == domain.RarityUnknown {
			coverage.UnknownRarity++
		}

		coverage.TotalCards += pair.Record.Count
		coverage.MarketValue = coverage.MarketValue.Add(pair.Valuation.TotalValue)
		if pair.Record.PurchasePrice != nil {
			count := decimal.NewFromInt(int64(pair.Record.Count))
			coverage.PurchaseValue = coverage.PurchaseValue.Add(pair.Record.PurchasePrice.Mul(count))
		}
	}

	coverage.Appreciation = coverage.MarketValue.Sub(coverage.PurchaseValue)
	return coverage
}
