package services

import (
	"context"

	"stock-advisor/models"
)

// MarketDataService defines the interface for quote and indicator retrieval
type MarketDataService interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error)
}

// LLMService defines the interface for generative text augmentation
type LLMService interface {
	InvokeWithPrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Compile-time interface verification
var _ MarketDataService = (*AlphaVantageService)(nil)
var _ MarketDataService = (*AlpacaService)(nil)
var _ LLMService = (*OpenAIService)(nil)
var _ LLMService = (*BedrockService)(nil)
