// ====================================
// File: cmd/bot/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Kami516/mugshot/internal/bot"
	"github.com/Kami516/mugshot/internal/card"
	"github.com/Kami516/mugshot/internal/config"
	"github.com/Kami516/mugshot/internal/logger"
	"github.com/Kami516/mugshot/internal/pricing"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to config file")
	ticker := flag.String("ticker", "BONK", "token ticker (1-10 chars)")
	invested := flag.Float64("invested", 1000, "initial investment in tokens")
	sold := flag.Float64("sold", 2500, "final amount in tokens")
	chain := flag.String("chain", "SOL", "chain: SOL or ETH")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fallbackLogger, _ := zap.NewDevelopment()
		fallbackLogger.Fatal("Failed to load config", zap.Error(err))
	}

	log, err := logger.New(&logger.Config{
		LogFile:     cfg.LogFile,
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: cfg.DebugLogging,
	})
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting mugshot card generator")

	assets := card.NewAssetResolver(cfg.AssetsDir, log.Logger)
	fonts := card.LoadFonts(cfg.FontsDir, log.Logger)
	renderer := card.NewRenderer(assets, fonts, log.Logger)

	fallbacks := make(map[card.Chain]float64, len(cfg.FallbackPrices))
	for name, price := range cfg.FallbackPrices {
		if c, err := card.ParseChain(name); err == nil {
			fallbacks[c] = price
		}
	}
	prices := pricing.NewService(pricing.Options{
		BaseURL:   cfg.PriceAPIURL,
		Timeout:   time.Duration(cfg.PriceTimeout) * time.Millisecond,
		MaxRetry:  time.Duration(cfg.PriceMaxRetry) * time.Millisecond,
		Fallbacks: fallbacks,
	}, log.Logger)

	service := bot.NewService(prices, renderer, log.Logger)

	buf, err := service.RenderCard(ctx, bot.CardRequest{
		Ticker:            *ticker,
		InitialInvestment: *invested,
		FinalAmount:       *sold,
		Chain:             *chain,
	})
	if err != nil {
		log.Fatal("Card generation failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatal("Failed to create output directory", zap.Error(err))
	}
	outPath := filepath.Join(cfg.OutputDir, strings.ToLower(*ticker)+"_card.png")
	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		log.Fatal("Failed to write card", zap.Error(err))
	}

	log.Info("Card written", zap.String("path", outPath), zap.Int("bytes", len(buf)))
}
