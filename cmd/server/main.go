// Package main runs the stock advisor HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-advisor/advisor"
	"stock-advisor/config"
	"stock-advisor/internal/api"
	"stock-advisor/internal/app"
	"stock-advisor/observability"
	"stock-advisor/repository"
	"stock-advisor/services"

	"github.com/joho/godotenv"
)

func main() {
	dotenvErr := godotenv.Load()

	production := os.Getenv("APP_ENV") == "production"
	observability.InitLogger(production)
	observability.InitMetrics()

	if dotenvErr != nil {
		observability.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()

	// Database is optional; without it queries still work but advice
	// history and quote caching are disabled.
	var repo *repository.Repository
	if cfg.HasDatabase() {
		var err error
		repo, err = repository.NewRepository(ctx, cfg.Database.URL)
		if err != nil {
			observability.Warn("failed to connect to database, continuing without persistence", "error", err)
			repo = nil
		} else {
			defer repo.Close()
			observability.Info("connected to database")
		}
	} else {
		observability.Info("no DATABASE_URL configured, running without persistence")
	}

	marketData := buildMarketDataService(cfg, repo)
	llm := buildLLMService(ctx, cfg)

	var recorder advisor.RecommendationRecorder
	if repo != nil {
		recorder = repo
	}
	adv := advisor.New(cfg, marketData, llm, recorder)

	var appRepo app.RepositoryInterface
	if repo != nil {
		appRepo = repo
	}
	application := app.New(cfg, appRepo, adv)

	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		observability.Info("starting stock advisor server", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Fatal("server forced to shutdown", "error", err)
	}

	application.Shutdown(shutdownCtx)
	observability.Info("server stopped")
}

// buildMarketDataService selects the quote provider and wraps it with the
// database-backed cache when persistence is available.
func buildMarketDataService(cfg *config.Config, repo *repository.Repository) services.MarketDataService {
	var inner services.MarketDataService

	switch cfg.Providers.MarketData {
	case "alpaca":
		if !cfg.HasAlpaca() {
			observability.Warn("alpaca selected but ALPACA_API_KEY/ALPACA_API_SECRET not set, queries will degrade")
			return nil
		}
		inner = services.NewAlpacaService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Advisor.RSIPeriod)
	default:
		if !cfg.HasAlphaVantage() {
			observability.Warn("alphavantage selected but ALPHA_VANTAGE_API_KEY not set, queries will degrade")
			return nil
		}
		inner = services.NewAlphaVantageService(cfg.AlphaVantage.APIKey, cfg.Advisor.RSIPeriod)
	}

	observability.WithProvider(cfg.Providers.MarketData).Info("market data provider initialized")

	if repo != nil {
		ttl := time.Duration(cfg.Advisor.QuoteCacheTTL) * time.Second
		return services.NewCachedMarketDataService(inner, repo, ttl)
	}
	return inner
}

// buildLLMService selects the generative backend. A nil return disables
// answer augmentation; the advisor falls back to deterministic summaries.
func buildLLMService(ctx context.Context, cfg *config.Config) services.LLMService {
	switch cfg.Providers.Generative {
	case "bedrock":
		llm, err := services.NewBedrockService(ctx, cfg.Bedrock.Region, cfg.Bedrock.ModelID, 0)
		if err != nil {
			observability.Warn("failed to initialize bedrock, answers will not be augmented", "error", err)
			return nil
		}
		observability.WithProvider("bedrock").Info("generative backend initialized", "model", cfg.Bedrock.ModelID)
		return llm
	default:
		if !cfg.HasOpenAI() {
			observability.Warn("openai selected but OPENAI_API_KEY not set, answers will not be augmented")
			return nil
		}
		llm, err := services.NewOpenAIService(cfg)
		if err != nil {
			observability.Warn("failed to initialize openai, answers will not be augmented", "error", err)
			return nil
		}
		observability.WithProvider("openai").Info("generative backend initialized", "model", cfg.OpenAI.Model)
		return llm
	}
}
