// Sextant - Portfolio Risk Assessment Engine
// Entry point for the API server
package main

import (
	"flag"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/findosh/sextant/internal/config"
	"github.com/findosh/sextant/internal/handlers"
	applog "github.com/findosh/sextant/internal/log"
	"github.com/findosh/sextant/internal/middleware"
	"github.com/findosh/sextant/internal/services/narrative"
	"github.com/findosh/sextant/internal/services/portfolio"
	"github.com/findosh/sextant/internal/services/risk"
	"github.com/findosh/sextant/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := applog.New(cfg.Logging)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := storage.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	profileRepo := storage.NewProfileRepository(db)
	holdingRepo := storage.NewHoldingRepository(db)

	portfolioProvider, err := portfolio.NewService(portfolio.Config{
		Mode: portfolio.Mode(cfg.Portfolio.Mode),
		Seed: cfg.Portfolio.Seed,
	}, holdingRepo, logger)
	if err != nil {
		logger.Fatal("failed to create portfolio provider", zap.Error(err))
	}

	// Without an API key narratives resolve straight to fallback text.
	var narrativeProvider narrative.Provider
	if cfg.OpenAI.APIKey != "" {
		client, err := narrative.NewOpenAIClient(narrative.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		}, logger)
		if err != nil {
			logger.Fatal("failed to create narrative provider", zap.Error(err))
		}
		narrativeProvider = client
	} else {
		logger.Info("no OpenAI API key configured, using narrative fallbacks")
	}
	resolver := narrative.NewResolver(narrativeProvider, cfg.OpenAI.Timeout, logger)

	riskService, err := risk.NewService(profileRepo, portfolioProvider, resolver, logger)
	if err != nil {
		logger.Fatal("failed to create risk service", zap.Error(err))
	}

	h := handlers.New(cfg, riskService, logger)

	handler := middleware.Chain(
		h.Routes(),
		middleware.Recover(logger),
		middleware.SecurityHeaders,
		middleware.RequestLogger(logger),
	)

	addr := ":" + cfg.Server.Port
	logger.Info("sextant server starting",
		zap.String("addr", addr),
		zap.String("environment", cfg.Server.Environment),
		zap.String("portfolio_mode", cfg.Portfolio.Mode),
	)

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
