package services

import (
	"context"
	"fmt"
	"time"

	"stock-advisor/models"
	"stock-advisor/observability"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaService provides quotes and indicator readings from Alpaca market data
type AlpacaService struct {
	dataClient alpacaDataClient
	rsiPeriod  int
}

// alpacaDataClient is the subset of the Alpaca market data client we use (for testing)
type alpacaDataClient interface {
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// NewAlpacaService creates a new AlpacaService instance
func NewAlpacaService(apiKey, apiSecret string, rsiPeriod int) *AlpacaService {
	if rsiPeriod <= 1 {
		rsiPeriod = 14
	}

	dataClient := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &AlpacaService{
		dataClient: dataClient,
		rsiPeriod:  rsiPeriod,
	}
}

// newAlpacaServiceWithClient creates an AlpacaService with a custom client (for testing)
func newAlpacaServiceWithClient(client alpacaDataClient, rsiPeriod int) *AlpacaService {
	return &AlpacaService{
		dataClient: client,
		rsiPeriod:  rsiPeriod,
	}
}

// GetQuote returns the latest quote for a symbol. Price comes from the latest
// trade; change and day range come from recent daily bars.
func (s *AlpacaService) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("alpaca", "get_quote")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI("alpaca", "get_quote")

	quote, err := WithCircuitBreaker(ctx, BreakerAlpaca, func() (*models.Quote, error) {
		var q *models.Quote
		retryErr := WithRetry(ctx, DefaultRetryConfig, func() error {
			var err error
			q, err = s.fetchQuote(ctx, symbol)
			return err
		})
		return q, retryErr
	})
	if err != nil {
		metrics.RecordExternalAPIError("alpaca", "get_quote", categorizeAPIError(err))
		return nil, err
	}

	return quote, nil
}

func (s *AlpacaService) fetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	trade, err := s.dataClient.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to get trade for %s: %w", symbol, err)
	}

	bars, err := s.getDailyBars(symbol, 10)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no daily bars for symbol %s", symbol)
	}

	price := decimal.NewFromFloat(trade.Price)
	latest := bars[len(bars)-1]

	prevClose := decimal.NewFromFloat(latest.Close)
	if len(bars) >= 2 {
		prevClose = decimal.NewFromFloat(bars[len(bars)-2].Close)
	}

	change := price.Sub(prevClose)
	changePercent := 0.0
	if !prevClose.IsZero() {
		changePercent, _ = change.Div(prevClose).Mul(decimal.NewFromInt(100)).Float64()
	}

	return &models.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        int64(latest.Volume),
		Open:          decimal.NewFromFloat(latest.Open),
		High:          decimal.NewFromFloat(latest.High),
		Low:           decimal.NewFromFloat(latest.Low),
		PrevClose:     prevClose,
		Timestamp:     trade.Timestamp,
	}, nil
}

// GetRSI computes the RSI for a symbol from recent daily closes
func (s *AlpacaService) GetRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("alpaca", "get_rsi")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI("alpaca", "get_rsi")

	indicator, err := WithCircuitBreaker(ctx, BreakerAlpaca, func() (*models.IndicatorValue, error) {
		var iv *models.IndicatorValue
		retryErr := WithRetry(ctx, DefaultRetryConfig, func() error {
			var err error
			iv, err = s.fetchRSI(ctx, symbol)
			return err
		})
		return iv, retryErr
	})
	if err != nil {
		metrics.RecordExternalAPIError("alpaca", "get_rsi", categorizeAPIError(err))
		return nil, err
	}

	return indicator, nil
}

func (s *AlpacaService) fetchRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Calendar days, not trading days; fetch with headroom for weekends and holidays
	bars, err := s.getDailyBars(symbol, s.rsiPeriod*3)
	if err != nil {
		return nil, err
	}
	if len(bars) < s.rsiPeriod+1 {
		return nil, fmt.Errorf("insufficient history for RSI on %s: have %d bars, need %d",
			symbol, len(bars), s.rsiPeriod+1)
	}

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}

	return &models.IndicatorValue{
		Name:      models.IndicatorRSI,
		Value:     calculateRSI(closes, s.rsiPeriod),
		Timestamp: bars[len(bars)-1].Timestamp,
	}, nil
}

func (s *AlpacaService) getDailyBars(symbol string, days int) ([]marketdata.Bar, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	bars, err := s.dataClient.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bars for %s: %w", symbol, err)
	}

	return bars, nil
}

// calculateRSI computes Relative Strength Index over the trailing period
func calculateRSI(prices []float64, period int) float64 {
	if len(prices) < period+1 {
		return 50.0 // neutral
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := prices[len(prices)-i] - prices[len(prices)-i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	rsi := 100 - (100 / (1 + rs))
	return rsi
}
