package scryfall

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardfolio/cardfolio-backend/internal/domain"
)

func TestClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/named", r.URL.Path)
		assert.Equal(t, "Old Gnawbone", r.URL.Query().Get("exact"))
		assert.Equal(t, "afr", r.URL.Query().Get("set"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rarity":"mythic","prices":{"usd":"2.00","usd_foil":null}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	facts, err := client.Lookup(context.Background(), "Old Gnawbone", "afr")
	require.NoError(t, err)

	assert.Equal(t, domain.RarityMythic, facts.Rarity)
	require.NotNil(t, facts.MarketPriceNonfoil)
	assert.Equal(t, "2", facts.MarketPriceNonfoil.String())
	assert.Nil(t, facts.MarketPriceFoil)
}

func TestClient_LookupNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"object":"error","code":"not_found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "Not A Real Card", "")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestClient_LookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Lookup(context.Background(), "Abrade", "vow")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCardNotFound)
	assert.ErrorContains(t, err, "status 502")
}

func TestClient_LookupUnknownRarityAndBadPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rarity":"special","prices":{"usd":"not-a-price","usd_foil":"-1.00"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	facts, err := client.Lookup(context.Background(), "Mystery Card", "")
	require.NoError(t, err)

	// Garbage provider data degrades to missing, never to zero.
	assert.Equal(t, domain.RarityUnknown, facts.Rarity)
	assert.Nil(t, facts.MarketPriceNonfoil)
	assert.Nil(t, facts.MarketPriceFoil)
}
