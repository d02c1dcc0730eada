// internal/bot/service.go
package bot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kami516/mugshot/internal/card"
	"github.com/Kami516/mugshot/internal/pricing"
)

const maxTickerLen = 10

// CardRequest представляет запрос на генерацию торговой карточки
type CardRequest struct {
	Ticker            string  `json:"ticker"`
	InitialInvestment float64 `json:"initial_investment"`
	FinalAmount       float64 `json:"final_amount"`
	Chain             string  `json:"chain"`
}

// Validate enforces the input contract before the render core runs. The
// core assumes these constraints hold and does not re-check them.
func (r CardRequest) Validate() error {
	if len(r.Ticker) == 0 || len(r.Ticker) > maxTickerLen {
		return fmt.Errorf("ticker must be 1-%d characters, got: %q", maxTickerLen, r.Ticker)
	}
	if r.InitialInvestment <= 0 {
		return fmt.Errorf("initial investment must be positive, got: %f", r.InitialInvestment)
	}
	if r.FinalAmount < 0 {
		return fmt.Errorf("final amount cannot be negative, got: %f", r.FinalAmount)
	}
	if _, err := card.ParseChain(r.Chain); err != nil {
		return err
	}
	return nil
}

// Service ties the caller boundary together: validation, the price
// collaborator and the card renderer.
type Service struct {
	pricing  *pricing.Service
	renderer *card.Renderer
	logger   *zap.Logger
}

// NewService creates the card service.
func NewService(pricing *pricing.Service, renderer *card.Renderer, logger *zap.Logger) *Service {
	return &Service{
		pricing:  pricing,
		renderer: renderer,
		logger:   logger.Named("bot"),
	}
}

// RenderCard validates the request, resolves the quote and renders the
// card. The returned buffer is a complete 1600x1071 PNG.
func (s *Service) RenderCard(ctx context.Context, req CardRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid card request: %w", err)
	}

	chain, err := card.ParseChain(req.Chain)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	price := s.pricing.GetPrice(ctx, chain)

	buf, err := s.renderer.Render(ctx, card.TradeInput{
		Ticker:            req.Ticker,
		InitialInvestment: req.InitialInvestment,
		FinalAmount:       req.FinalAmount,
		Chain:             chain,
		Price:             price,
	})
	if err != nil {
		s.logger.Error("Card render failed",
			zap.String("ticker", req.Ticker),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Card rendered",
		zap.String("ticker", req.Ticker),
		zap.String("chain", string(chain)),
		zap.Float64("price", price),
		zap.Int("bytes", len(buf)),
		zap.Duration("took", time.Since(start)))
	return buf, nil
}
