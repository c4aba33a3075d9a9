package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// Warning describes one non-fatal data-quality issue found while reading a
// collection export. Warnings never drop records; the offending field is
// treated as missing (or defaulted) instead.
type Warning struct {
	Line    int // 1-based line number in the input, header included
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d, %s: %s", w.Line, w.Field, w.Message)
}

// columnAliases maps the header names seen across collection exports
// (Moxfield, Deckbox, TCGPlayer) onto canonical column identifiers.
var columnAliases = map[string]string{
	"name":            "name",
	"edition":         "set",
	"edition/set":     "set",
	"set":             "set",
	"set code":        "set",
	"count":           "count",
	"quantity":        "count",
	"foil":            "foil",
	"rarity":          "rarity",
	"condition":       "condition",
	"purchase price":  "purchase_price",
	"market usd":      "market_nonfoil",
	"usd price":       "market_nonfoil",
	"market usd foil": "market_foil",
	"usd foil price":  "market_foil",
}

// foil column values that mark a record as foil; anything else, including
// blank, "false", "no" and "0", is nonfoil
var foilValues = map[string]bool{
	"foil":   true,
	"etched": true,
	"yes":    true,
	"true":   true,
	"1":      true,
}

// ReadCollection parses a collection export into card records.
//
// Price columns are optional; absent or unparseable values map to missing,
// never to zero. Negative prices are treated as missing with a warning.
// Unknown rarity and condition values fall back to their defaults with a
// warning. No row is dropped for data problems; only a malformed CSV stream
// or a header without a Name column is an error.
func ReadCollection(r io.Reader) ([]domain.CardRecord, []Warning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		if canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
			columns[canonical] = i
		}
	}
	if _, ok := columns["name"]; !ok {
		return nil, nil, fmt.Errorf("input has no Name column (header: %s)", strings.Join(header, ", "))
	}

	var records []domain.CardRecord
	var warnings []Warning
	line := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		warn := func(fieldName, message string) {
			warnings = append(warnings, Warning{Line: line, Field: fieldName, Message: message})
		}

		record := domain.CardRecord{
			Name:    field("name"),
			SetCode: field("set"),
			Foil:    foilValues[strings.ToLower(field("foil"))],
		}
		if record.Name == "" {
			warn("Name", "empty card name")
		}

		record.Count = parseCount(field("count"), warn)
		record.Rarity = parseRarity(field("rarity"), warn)
		record.Condition = parseCondition(field("condition"), warn)
		record.PurchasePrice = parsePrice("Purchase Price", field("purchase_price"), warn)
		record.MarketPriceNonfoil = parsePrice("Market USD", field("market_nonfoil"), warn)
		record.MarketPriceFoil = parsePrice("Market USD Foil", field("market_foil"), warn)

		records = append(records, record)
	}

	return records, warnings, nil
}

// parseCount parses the copy count, defaulting to 1 with a warning on missing
// or invalid input
func parseCount(s string, warn func(field, message string)) int {
	if s == "" {
		return 1
	}
	count, err := strconv.Atoi(s)
	if err != nil || count < 1 {
		warn("Count", fmt.Sprintf("invalid count %q, defaulting to 1", s))
		return 1
	}
	return count
}

func parseRarity(s string, warn func(field, message string)) domain.Rarity {
	rarity, ok := domain.ParseRarity(s)
	if !ok && s != "" {
		warn("Rarity", fmt.Sprintf("unrecognized rarity %q, treating as unknown", s))
	}
	return rarity
}

func parseCondition(s string, warn func(field, message string)) domain.Condition {
	condition, ok := domain.ParseCondition(s)
	if !ok && s != "" {
		warn("Condition", fmt.Sprintf("unrecognized condition %q, defaulting to near_mint", s))
	}
	return condition
}

// parsePrice parses an optional price field. Empty input is missing without a
// warning; unparseable or negative input is missing with a warning and is
// never coerced to zero.
func parsePrice(fieldName, s string, warn func(field, message string)) *decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	if cleaned == "" {
		return nil
	}

	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		warn(fieldName, fmt.Sprintf("unparseable price %q, treating as missing", s))
		return nil
	}
	if price.IsNegative() {
		warn(fieldName, fmt.Sprintf("negative price %q, treating as missing", s))
		return nil
	}

	return &price
}
