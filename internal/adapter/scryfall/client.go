package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

// DefaultBaseURL is the public Scryfall API endpoint
const DefaultBaseURL = "https://api.scryfall.com"

// namedCardResponse models the subset of the /cards/named payload we consume
type namedCardResponse struct {
	Rarity string `json:"rarity"`
	Prices struct {
		USD     *string `json:"usd"`
		USDFoil *string `json:"usd_foil"`
	} `json:"prices"`
}

// Client implements domain.CardLookup against a Scryfall-compatible API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new lookup client.
// An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup fetches facts for a printing by exact name and set code.
// Returns domain.ErrCardNotFound when the provider has no such printing.
func (c *Client) Lookup(ctx context.Context, name, setCode string) (*domain.CardFacts, error) {
	query := url.Values{"exact": {name}}
	if setCode != "" {
		query.Set("set", setCode)
	}
	endpoint := c.baseURL + "/cards/named?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrCardNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup returned status %d for %q", resp.StatusCode, name)
	}

	var payload namedCardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	rarity, _ := domain.ParseRarity(payload.Rarity)
	facts := &domain.CardFacts{
		Rarity:             rarity,
		MarketPriceNonfoil: parseProviderPrice(payload.Prices.USD),
		MarketPriceFoil:    parseProviderPrice(payload.Prices.USDFoil),
	}
	return facts, nil
}

// parseProviderPrice converts a provider price string to a decimal.
// Absent, unparseable or negative values map to missing, never to zero.
func parseProviderPrice(s *string) *decimal.Decimal {
	if s == nil || *s == "" {
		return nil
	}
	price, err := decimal.NewFromString(*s)
	if err != nil || price.IsNegative() {
		return nil
	}
	return &price
}
