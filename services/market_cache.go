package services

import (
	"context"
	"time"

	"stock-advisor/models"
	"stock-advisor/observability"
)

// QuoteCache stores market data with a TTL. Implemented by the repository.
type QuoteCache interface {
	GetCachedQuote(ctx context.Context, symbol string) (*models.Quote, error)
	SetCachedQuote(ctx context.Context, quote *models.Quote, ttl time.Duration) error
	GetCachedRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error)
	SetCachedRSI(ctx context.Context, symbol string, indicator *models.IndicatorValue, ttl time.Duration) error
}

// CachedMarketDataService wraps a MarketDataService with a read-through
// cache. Cache errors are logged and treated as misses; the gateway remains
// the source of truth.
type CachedMarketDataService struct {
	inner MarketDataService
	cache QuoteCache
	ttl   time.Duration
}

func NewCachedMarketDataService(inner MarketDataService, cache QuoteCache, ttl time.Duration) *CachedMarketDataService {
	return &CachedMarketDataService{inner: inner, cache: cache, ttl: ttl}
}

// GetQuote returns a cached quote when fresh, otherwise fetches from the
// gateway and stores the result best-effort.
func (s *CachedMarketDataService) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if cached, err := s.cache.GetCachedQuote(ctx, symbol); err != nil {
		observability.Warn("Quote cache read failed", "symbol", symbol, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	quote, err := s.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCachedQuote(ctx, quote, s.ttl); err != nil {
		observability.Warn("Quote cache write failed", "symbol", symbol, "error", err)
	}
	return quote, nil
}

// GetRSI returns a cached RSI reading when fresh, otherwise fetches from the
// gateway and stores the result best-effort.
func (s *CachedMarketDataService) GetRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error) {
	if cached, err := s.cache.GetCachedRSI(ctx, symbol); err != nil {
		observability.Warn("RSI cache read failed", "symbol", symbol, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	indicator, err := s.inner.GetRSI(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCachedRSI(ctx, symbol, indicator, s.ttl); err != nil {
		observability.Warn("RSI cache write failed", "symbol", symbol, "error", err)
	}
	return indicator, nil
}

var _ MarketDataService = (*CachedMarketDataService)(nil)
