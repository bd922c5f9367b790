package repository

import (
	"context"
	"time"

	"stock-advisor/advisor"
	"stock-advisor/models"

	"github.com/google/uuid"
)

// RepositoryInterface defines all repository operations
type RepositoryInterface interface {
	// Health and lifecycle
	Close()
	Health(ctx context.Context) error

	// Advice history
	CreateRecommendation(ctx context.Context, rec *models.Recommendation) error
	Record(ctx context.Context, rec *models.Recommendation) error
	GetRecommendations(ctx context.Context, symbol string, limit int) ([]models.Recommendation, error)
	GetRecommendation(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)

	// Market data cache
	GetCachedQuote(ctx context.Context, symbol string) (*models.Quote, error)
	SetCachedQuote(ctx context.Context, quote *models.Quote, ttl time.Duration) error
	GetCachedRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error)
	SetCachedRSI(ctx context.Context, symbol string, indicator *models.IndicatorValue, ttl time.Duration) error
	InvalidateSymbol(ctx context.Context, symbol string) error
	CleanExpiredCache(ctx context.Context) (int64, error)
}

// Compile-time interface verification
var (
	_ RepositoryInterface            = (*Repository)(nil)
	_ advisor.RecommendationRecorder = (*Repository)(nil)
)
