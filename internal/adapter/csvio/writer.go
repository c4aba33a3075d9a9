package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// enrichedHeader preserves every input column and appends the engine outputs
var enrichedHeader = []string{
	"Name", "Edition", "Count", "Foil", "Rarity", "Condition",
	"Purchase Price", "Market USD", "Market USD Foil",
	"Resolved Unit Price", "Provenance", "Tier", "Total Value",
}

// WriteEnriched writes the enriched row sequence: every input column plus the
// resolved unit price, provenance, tier and total value per record
func WriteEnriched(w io.Writer, pairs []domain.Pair) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(enrichedHeader); err != nil {
		return fmt.Errorf("failed to write enriched header: %w", err)
	}

	for _, pair := range pairs {
		record := pair.Record
		valuation := pair.Valuation

		foil := ""
		if record.Foil {
			foil = "foil"
		}

		row := []string{
			record.Name,
			record.SetCode,
			fmt.Sprintf("%d", record.Count),
			foil,
			string(record.Rarity),
			string(record.Condition),
			formatOptionalPrice(record.PurchasePrice),
			formatOptionalPrice(record.MarketPriceNonfoil),
			formatOptionalPrice(record.MarketPriceFoil),
			valuation.UnitPrice.String(),
			string(valuation.Provenance),
			string(valuation.Tier),
			valuation.TotalValue.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write enriched row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteReport writes one aggregation report: one row per bucket, dimension
// values first, then the six statistics
func WriteReport(w io.Writer, groupBy []string, buckets []domain.AggregateBucket) error {
	writer := csv.NewWriter(w)

	header := append(append([]string{}, groupBy...),
		"Count", "Sum", "Mean", "Median", "Min", "Max", "Stdev")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, bucket := range buckets {
		row := append(append([]string{}, bucket.Key...),
			fmt.Sprintf("%d", bucket.Count),
			bucket.Sum.StringFixed(2),
			bucket.Mean.StringFixed(4),
			bucket.Median.StringFixed(4),
			bucket.Min.StringFixed(2),
			bucket.Max.StringFixed(2),
			bucket.Stdev.StringFixed(4),
		)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatOptionalPrice renders a nullable price; missing stays blank so a
// re-import still sees it as missing, not as zero
func formatOptionalPrice(price *decimal.Decimal) string {
	if price == nil {
		return ""
	}
	return price.String()
}
