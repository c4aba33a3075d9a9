package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cardfolio/cardfolio-backend/internal/adapter/csvio"
	"github.com/cardfolio/cardfolio-backend/internal/adapter/repository/postgres"
	"github.com/cardfolio/cardfolio-backend/internal/adapter/scryfall"
	"github.com/cardfolio/cardfolio-backend/internal/config"
	"github.com/cardfolio/cardfolio-backend/internal/domain"
	"github.com/cardfolio/cardfolio-backend/internal/logger"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/enrichment"
	"github.com/cardfolio/cardfolio-backend/internal/usecase/prefill"
)

func main() {
	configPath := flag.String("config", "enricher.toml", "path to TOML config file")
	inputPath := flag.String("input", "", "input collection CSV (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)
	if *inputPath != "" {
		cfg.Input.Path = *inputPath
	}
	if cfg.Input.Path == "" {
		fatal(log, "no input collection configured", nil)
	}

	if err := run(context.Background(), cfg, log); err != nil {
		fatal(log, "enrichment run failed", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// 1. Read the collection export
	input, err := os.Open(cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	records, warnings, err := csvio.ReadCollection(input)
	input.Close()
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		log.Warn("input data-quality warning", slog.String("detail", warning.String()))
	}
	log.Info("collection loaded",
		slog.String("path", cfg.Input.Path),
		slog.Int("records", len(records)),
		slog.Int("warnings", len(warnings)))

	// 2. Fill missing rarity/prices from the remote card database
	if cfg.Lookup.Enabled {
		client := scryfall.NewClient(cfg.Lookup.BaseURL)
		cached, err := scryfall.NewCachedLookup(client, cfg.Lookup.CacheSize)
		if err != nil {
			return err
		}

		var stats prefill.Stats
		records, stats = prefill.NewService(cached, log).Fill(ctx, records)
		log.Info("lookup prefill complete",
			slog.Int("looked_up", stats.Looked),
			slog.Int("filled", stats.Filled),
			slog.Int("not_found", stats.NotFound),
			slog.Int("failed", stats.Failed))
	}

	// 3. Resolve and aggregate
	table, err := cfg.BuildTable()
	if err != nil {
		return err
	}
	views, err := cfg.BuildViews()
	if err != nil {
		return err
	}

	orchestrator := enrichment.NewOrchestrator(table, views, cfg.Enrichment.Workers, log)
	result, err := orchestrator.Run(ctx, records)
	if err != nil {
		return err
	}

	// 4. Write outputs
	if err := writeEnriched(cfg.Output.EnrichedPath, result.Pairs); err != nil {
		return err
	}
	for _, report := range result.Reports {
		if err := writeReport(cfg.Output.ReportDir, report); err != nil {
			return err
		}
	}

	coverage := result.Coverage
	log.Info("coverage summary",
		slog.Int("authoritative", coverage.Authoritative),
		slog.Int("estimated_from_sibling", coverage.EstimatedFromSibling),
		slog.Int("estimated_from_table", coverage.EstimatedFromTable),
		slog.Int("unknown_rarity", coverage.UnknownRarity),
		slog.Int("total_cards", coverage.TotalCards),
		slog.Int("unique_cards", coverage.UniqueCards),
		slog.String("purchase_value", coverage.PurchaseValue.StringFixed(2)),
		slog.String("market_value", coverage.MarketValue.StringFixed(2)),
		slog.String("appreciation", coverage.Appreciation.StringFixed(2)))

	// 5. Optionally persist the run as a snapshot
	if cfg.DB.Enabled {
		if err := saveSnapshot(ctx, cfg.DB.DSN, result); err != nil {
			return err
		}
		log.Info("snapshot persisted")
	}

	return nil
}

func writeEnriched(path string, pairs []domain.Pair) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create enriched output: %w", err)
	}
	defer file.Close()

	return csvio.WriteEnriched(file, pairs)
}

func writeReport(dir string, report enrichment.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, report.Name+".csv"))
	if err != nil {
		return fmt.Errorf("failed to create report output: %w", err)
	}
	defer file.Close()

	groupBy := make([]string, len(report.GroupBy))
	for i, dim := range report.GroupBy {
		groupBy[i] = string(dim)
	}
	return csvio.WriteReport(file, groupBy, report.Buckets)
}

func saveSnapshot(ctx context.Context, dsn string, result *enrichment.Result) error {
	db, err := postgres.NewDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot := &domain.Snapshot{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Coverage:  result.Coverage,
		Pairs:     result.Pairs,
	}
	return postgres.NewSnapshotRepository(db).Save(ctx, snapshot)
}

func fatal(log *slog.Logger, message string, err error) {
	if err != nil {
		log.Error(message, slog.Any("error", err))
	} else {
		log.Error(message)
	}
	os.Exit(1)
}
