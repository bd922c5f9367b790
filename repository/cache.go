package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stock-advisor/models"

	"github.com/jackc/pgx/v5"
)

// Cache data types stored in market_data_cache.
const (
	cacheTypeQuote = "quote"
	cacheTypeRSI   = "rsi"
)

// GetCachedQuote returns a fresh cached quote for the symbol, or nil when
// the cache has no unexpired entry.
func (r *Repository) GetCachedQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	data, err := r.getCached(ctx, symbol, cacheTypeQuote)
	if err != nil || data == nil {
		return nil, err
	}

	var quote models.Quote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached quote: %w", err)
	}
	return &quote, nil
}

// SetCachedQuote stores a quote with a TTL.
func (r *Repository) SetCachedQuote(ctx context.Context, quote *models.Quote, ttl time.Duration) error {
	return r.setCached(ctx, quote.Symbol, cacheTypeQuote, quote, ttl)
}

// GetCachedRSI returns a fresh cached RSI reading for the symbol, or nil
// when the cache has no unexpired entry.
func (r *Repository) GetCachedRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error) {
	data, err := r.getCached(ctx, symbol, cacheTypeRSI)
	if err != nil || data == nil {
		return nil, err
	}

	var indicator models.IndicatorValue
	if err := json.Unmarshal(data, &indicator); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached RSI: %w", err)
	}
	return &indicator, nil
}

// SetCachedRSI stores an RSI reading with a TTL.
func (r *Repository) SetCachedRSI(ctx context.Context, symbol string, indicator *models.IndicatorValue, ttl time.Duration) error {
	return r.setCached(ctx, symbol, cacheTypeRSI, indicator, ttl)
}

// InvalidateSymbol removes all cached market data for a symbol.
func (r *Repository) InvalidateSymbol(ctx context.Context, symbol string) error {
	if err := r.checkDB(); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM market_data_cache WHERE symbol = $1`, symbol)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// CleanExpiredCache removes all expired cache entries and reports how many
// were deleted.
func (r *Repository) CleanExpiredCache(ctx context.Context) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, err
	}
	result, err := r.db.Exec(ctx, `DELETE FROM market_data_cache WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to clean expired cache: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *Repository) getCached(ctx context.Context, symbol, dataType string) ([]byte, error) {
	if err := r.checkDB(); err != nil {
		return nil, err
	}

	var data []byte

	// Let the database handle expiry check to avoid timezone issues
	err := r.db.QueryRow(ctx, `
		SELECT data FROM market_data_cache
		WHERE symbol = $1 AND data_type = $2 AND expires_at > NOW()
	`, symbol, dataType).Scan(&data)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}
	return data, nil
}

func (r *Repository) setCached(ctx context.Context, symbol, dataType string, value any, ttl time.Duration) error {
	if err := r.checkDB(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO market_data_cache (symbol, data_type, data, expires_at)
		VALUES ($1, $2, $3, NOW() + $4::interval)
		ON CONFLICT (symbol, data_type)
		DO UPDATE SET data = EXCLUDED.data, expires_at = NOW() + $4::interval, created_at = NOW()
	`, symbol, dataType, jsonData, ttl.String())

	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}
