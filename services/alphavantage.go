package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stock-advisor/models"
	"stock-advisor/observability"

	"github.com/shopspring/decimal"
)

// AlphaVantageService handles communication with Alpha Vantage API
type AlphaVantageService struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	rsiPeriod  int
}

// NewAlphaVantageService creates a new AlphaVantageService instance
func NewAlphaVantageService(apiKey string, rsiPeriod int) *AlphaVantageService {
	if rsiPeriod <= 1 {
		rsiPeriod = 14
	}
	return &AlphaVantageService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.alphavantage.co/query",
		rsiPeriod:  rsiPeriod,
	}
}

// QuoteResponse represents a quote from Alpha Vantage
type QuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		Open          string `json:"02. open"`
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		LatestDay     string `json:"07. latest trading day"`
		PrevClose     string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

// RSIResponse represents the RSI technical indicator response from Alpha Vantage
type RSIResponse struct {
	Analysis map[string]struct {
		RSI string `json:"RSI"`
	} `json:"Technical Analysis: RSI"`
}

// GetQuote returns the latest quote for a symbol
func (s *AlphaVantageService) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("alphavantage", "get_quote")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI("alphavantage", "get_quote")

	quote, err := WithCircuitBreaker(ctx, BreakerAlphaVantage, func() (*models.Quote, error) {
		var q *models.Quote
		retryErr := WithRetry(ctx, DefaultRetryConfig, func() error {
			var err error
			q, err = s.fetchQuote(ctx, symbol)
			return err
		})
		return q, retryErr
	})
	if err != nil {
		metrics.RecordExternalAPIError("alphavantage", "get_quote", categorizeAPIError(err))
		return nil, err
	}

	return quote, nil
}

func (s *AlphaVantageService) fetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request returned status %d", resp.StatusCode)
	}

	var quoteResp QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}

	gq := quoteResp.GlobalQuote
	if gq.Symbol == "" || gq.Price == "" {
		// Alpha Vantage returns an empty Global Quote object for unknown symbols
		return nil, fmt.Errorf("no quote data for symbol %s", symbol)
	}

	price, err := decimal.NewFromString(gq.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price %q: %w", gq.Price, err)
	}
	change, err := decimal.NewFromString(gq.Change)
	if err != nil {
		return nil, fmt.Errorf("failed to parse change %q: %w", gq.Change, err)
	}

	changePercent, err := strconv.ParseFloat(strings.TrimSuffix(gq.ChangePercent, "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse change percent %q: %w", gq.ChangePercent, err)
	}

	var volume int64
	if gq.Volume != "" {
		volume, err = strconv.ParseInt(gq.Volume, 10, 64)
		if err != nil {
			observability.Warn("failed to parse volume", "value", gq.Volume, "error", err)
		}
	}

	open, _ := decimal.NewFromString(gq.Open)
	high, _ := decimal.NewFromString(gq.High)
	low, _ := decimal.NewFromString(gq.Low)
	prevClose, _ := decimal.NewFromString(gq.PrevClose)

	return &models.Quote{
		Symbol:        gq.Symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		Open:          open,
		High:          high,
		Low:           low,
		PrevClose:     prevClose,
		Timestamp:     time.Now(),
	}, nil
}

// GetRSI returns the latest RSI reading for a symbol
func (s *AlphaVantageService) GetRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("alphavantage", "get_rsi")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI("alphavantage", "get_rsi")

	indicator, err := WithCircuitBreaker(ctx, BreakerAlphaVantage, func() (*models.IndicatorValue, error) {
		var iv *models.IndicatorValue
		retryErr := WithRetry(ctx, DefaultRetryConfig, func() error {
			var err error
			iv, err = s.fetchRSI(ctx, symbol)
			return err
		})
		return iv, retryErr
	})
	if err != nil {
		metrics.RecordExternalAPIError("alphavantage", "get_rsi", categorizeAPIError(err))
		return nil, err
	}

	return indicator, nil
}

func (s *AlphaVantageService) fetchRSI(ctx context.Context, symbol string) (*models.IndicatorValue, error) {
	params := url.Values{}
	params.Set("function", "RSI")
	params.Set("symbol", symbol)
	params.Set("interval", "daily")
	params.Set("time_period", strconv.Itoa(s.rsiPeriod))
	params.Set("series_type", "close")
	params.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build RSI request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch RSI: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("RSI request returned status %d", resp.StatusCode)
	}

	var rsiResp RSIResponse
	if err := json.NewDecoder(resp.Body).Decode(&rsiResp); err != nil {
		return nil, fmt.Errorf("failed to decode RSI: %w", err)
	}

	if len(rsiResp.Analysis) == 0 {
		return nil, fmt.Errorf("no RSI data for symbol %s", symbol)
	}

	// Dates sort lexicographically, latest reading last
	dates := make([]string, 0, len(rsiResp.Analysis))
	for date := range rsiResp.Analysis {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	latest := dates[len(dates)-1]

	value, err := strconv.ParseFloat(rsiResp.Analysis[latest].RSI, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSI value %q: %w", rsiResp.Analysis[latest].RSI, err)
	}

	ts, err := time.Parse("2006-01-02", latest)
	if err != nil {
		ts = time.Now()
	}

	return &models.IndicatorValue{
		Name:      models.IndicatorRSI,
		Value:     value,
		Timestamp: ts,
	}, nil
}
