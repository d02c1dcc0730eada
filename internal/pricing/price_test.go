package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Kami516/mugshot/internal/card"
)

func newTestService(baseURL string) *Service {
	return NewService(Options{
		BaseURL:  baseURL,
		Timeout:  2 * time.Second,
		MaxRetry: 100 * time.Millisecond,
	}, zap.NewNop())
}

func TestGetPrice_ParsesDeepestPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"schemaVersion": "1.0.0",
			"pairs": [
				{"chainId": "solana", "dexId": "raydium", "priceUsd": "149.20", "liquidity": {"usd": 1000}},
				{"chainId": "solana", "dexId": "orca", "priceUsd": "150.50", "liquidity": {"usd": 50000}}
			]
		}`))
	}))
	defer srv.Close()

	price := newTestService(srv.URL).GetPrice(context.Background(), card.ChainSOL)
	assert.Equal(t, 150.50, price)
}

func TestGetPrice_FallbackOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	assert.Equal(t, DefaultFallbackSOL, s.GetPrice(context.Background(), card.ChainSOL))
	assert.Equal(t, DefaultFallbackETH, s.GetPrice(context.Background(), card.ChainETH))
}

func TestGetPrice_FallbackOnBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	price := newTestService(srv.URL).GetPrice(context.Background(), card.ChainSOL)
	assert.Equal(t, DefaultFallbackSOL, price)
}

func TestGetPrice_FallbackOnEmptyPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"schemaVersion": "1.0.0", "pairs": []}`))
	}))
	defer srv.Close()

	price := newTestService(srv.URL).GetPrice(context.Background(), card.ChainETH)
	assert.Equal(t, DefaultFallbackETH, price)
}

func TestGetPrice_ConfiguredFallbackWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewService(Options{
		BaseURL:   srv.URL,
		MaxRetry:  100 * time.Millisecond,
		Fallbacks: map[card.Chain]float64{card.ChainSOL: 99.9},
	}, zap.NewNop())

	assert.Equal(t, 99.9, s.GetPrice(context.Background(), card.ChainSOL))
}
