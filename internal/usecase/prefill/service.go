package prefill

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// Stats reports what a prefill pass did
type Stats struct {
	Looked   int // Records that needed a lookup
	Filled   int // Records that received at least one field
	NotFound int // Records the provider had no entry for
	Failed   int // Lookup failures, resolved as "treat as missing"
}

// Service fills missing rarity and market-price fields from the remote
// card-data collaborator before records enter the valuation engine. The
// engine itself never performs I/O; this pass runs strictly in front of it.
type Service struct {
	Lookup domain.CardLookup
	Logger *slog.Logger
}

// NewService creates a new prefill Service instance
func NewService(lookup domain.CardLookup, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Lookup: lookup, Logger: logger}
}

// Fill returns a copy of records with missing rarity and market prices filled
// from the lookup where possible. Fields already present are never replaced,
// and purchase prices are never touched.
//
// Lookup misses and failures are resolved here as "leave the field missing" -
// the backfill engine's table path covers them - so Fill never fails the run.
func (s *Service) Fill(ctx context.Context, records []domain.CardRecord) ([]domain.CardRecord, Stats) {
	filled := make([]domain.CardRecord, len(records))
	copy(filled, records)

	var stats Stats
	for i := range filled {
		record := &filled[i]
		if !needsLookup(record) {
			continue
		}
		stats.Looked++

		facts, err := s.Lookup.Lookup(ctx, record.Name, record.SetCode)
		if err != nil {
			if errors.Is(err, domain.ErrCardNotFound) {
				stats.NotFound++
				continue
			}
			stats.Failed++
			s.Logger.Warn("card lookup failed, treating fields as missing",
				slog.String("name", record.Name),
				slog.String("set", record.SetCode),
				slog.Any("error", err))
			continue
		}

		if apply(record, facts) {
			stats.Filled++
		}
	}

	return filled, stats
}

// needsLookup reports whether a record is missing anything a lookup can supply
func needsLookup(record *domain.CardRecord) bool {
	return record.Rarity == domain.RarityUnknown ||
		record.MarketPriceNonfoil == nil ||
		record.MarketPriceFoil == nil
}

// apply copies missing fields from facts into record, reporting whether
// anything changed
func apply(record *domain.CardRecord, facts *domain.CardFacts) bool {
	changed := false

	if record.Rarity == domain.RarityUnknown && facts.Rarity != domain.RarityUnknown {
		record.Rarity = facts.Rarity
		changed = true
	}
	if record.MarketPriceNonfoil == nil && facts.MarketPriceNonfoil != nil {
		price := *facts.MarketPriceNonfoil
		record.MarketPriceNonfoil = &price
		changed = true
	}
	if record.MarketPriceFoil == nil && facts.MarketPriceFoil != nil {
		price := *facts.MarketPriceFoil
		record.MarketPriceFoil = &price
		changed = true
	}

	return changed
}
