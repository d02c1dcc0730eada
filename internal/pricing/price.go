// internal/pricing/price.go
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/Kami516/mugshot/internal/card"
)

const defaultBaseURL = "https://api.dexscreener.com/latest/dex"

// Per-chain constant fallbacks, used whenever the quote lookup fails.
const (
	DefaultFallbackSOL = 150.0
	DefaultFallbackETH = 3500.0
)

// Native token addresses queried for the USD quote.
var chainTokens = map[card.Chain]string{
	card.ChainSOL: "So11111111111111111111111111111111111111112",
	card.ChainETH: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
}

// quoteResponse представляет основную структуру ответа DexScreener
type quoteResponse struct {
	SchemaVersion string     `json:"schemaVersion"`
	Pairs         []pairInfo `json:"pairs"`
}

// pairInfo содержит информацию о паре
type pairInfo struct {
	ChainId  string  `json:"chainId"`
	DexId    string  `json:"dexId"`
	PriceUsd string  `json:"priceUsd"`
	Liq      liqInfo `json:"liquidity"`
}

type liqInfo struct {
	USD float64 `json:"usd"`
}

// Options configures the price service.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	MaxRetry  time.Duration
	Fallbacks map[card.Chain]float64
}

// Service запрашивает текущую цену USD для выбранной сети. Любая ошибка
// запроса или разбора заменяется на константный fallback, поэтому рендер
// карточки никогда не блокируется недоступностью котировок.
type Service struct {
	client    *http.Client
	baseURL   string
	maxRetry  time.Duration
	fallbacks map[card.Chain]float64
	logger    *zap.Logger
}

// NewService creates a price service. Zero-valued options get defaults.
func NewService(opts Options, logger *zap.Logger) *Service {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetry <= 0 {
		opts.MaxRetry = 15 * time.Second
	}
	fallbacks := map[card.Chain]float64{
		card.ChainSOL: DefaultFallbackSOL,
		card.ChainETH: DefaultFallbackETH,
	}
	for chain, price := range opts.Fallbacks {
		if price > 0 {
			fallbacks[chain] = price
		}
	}
	return &Service{
		client:    &http.Client{Timeout: opts.Timeout},
		baseURL:   opts.BaseURL,
		maxRetry:  opts.MaxRetry,
		fallbacks: fallbacks,
		logger:    logger.Named("pricing"),
	}
}

// GetPrice returns the current USD quote for the chain's native token, or
// the configured constant fallback when the lookup fails. Never errors.
func (s *Service) GetPrice(ctx context.Context, chain card.Chain) float64 {
	op := func() (float64, error) {
		return s.fetchPrice(ctx, chain)
	}

	price, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(s.maxRetry),
	)
	if err != nil {
		fallback := s.fallbacks[chain]
		s.logger.Warn("Price lookup failed, using fallback",
			zap.String("chain", string(chain)),
			zap.Float64("fallback", fallback),
			zap.Error(err))
		return fallback
	}

	s.logger.Debug("Price resolved",
		zap.String("chain", string(chain)),
		zap.Float64("price", price))
	return price
}

func (s *Service) fetchPrice(ctx context.Context, chain card.Chain) (float64, error) {
	token, ok := chainTokens[chain]
	if !ok {
		return 0, backoff.Permanent(fmt.Errorf("no quote token for chain %q", chain))
	}

	url := fmt.Sprintf("%s/tokens/%s", s.baseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return 0, backoff.Permanent(err)
		}
		return 0, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var quote quoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, backoff.Permanent(fmt.Errorf("failed to parse response: %w", err))
	}
	if len(quote.Pairs) == 0 {
		return 0, backoff.Permanent(fmt.Errorf("no pairs for chain %q", chain))
	}

	// Пары отсортированы по ликвидности: берем самую глубокую с ценой.
	best := quote.Pairs[0]
	for _, p := range quote.Pairs[1:] {
		if p.Liq.USD > best.Liq.USD && p.PriceUsd != "" {
			best = p
		}
	}

	price, err := strconv.ParseFloat(best.PriceUsd, 64)
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("invalid priceUsd %q: %w", best.PriceUsd, err))
	}
	if price <= 0 {
		return 0, backoff.Permanent(fmt.Errorf("non-positive price: %f", price))
	}
	return price, nil
}
