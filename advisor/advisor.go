package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-advisor/config"
	"stock-advisor/models"
	"stock-advisor/observability"
	"stock-advisor/services"
)

// ErrEmptyQuery is returned when the query text is blank.
var ErrEmptyQuery = errors.New("query must not be empty")

// Query routing path labels for metrics.
const (
	pathSymbol  = "symbol"
	pathGeneral = "general"
)

// RecommendationRecorder persists recommendations for later retrieval.
// Recording is best-effort and never blocks or fails a response.
type RecommendationRecorder interface {
	Record(ctx context.Context, rec *models.Recommendation) error
}

// Advisor runs the full query pipeline: symbol extraction, market data fetch,
// signal classification, aggregation, and response composition.
type Advisor struct {
	extractor  *SymbolExtractor
	classifier *IndicatorClassifier
	aggregator *SignalAggregator
	composer   *ResponseComposer
	marketData services.MarketDataService // nil forces the degraded path
	recorder   RecommendationRecorder     // nil disables advice history
	cfg        config.AdvisorConfig
}

// New wires the pipeline from configuration. marketData, llm, and recorder
// may each be nil; the pipeline degrades rather than failing.
func New(cfg *config.Config, marketData services.MarketDataService, llm services.LLMService, recorder RecommendationRecorder) *Advisor {
	return &Advisor{
		extractor:  NewSymbolExtractor(cfg.Extractor),
		classifier: NewIndicatorClassifier(cfg.Advisor),
		aggregator: NewSignalAggregator(cfg.Advisor),
		composer:   NewResponseComposer(llm, cfg.Advisor),
		marketData: marketData,
		recorder:   recorder,
		cfg:        cfg.Advisor,
	}
}

// Ask answers a single free-text query. A resolvable ticker routes to the
// symbol path; anything else goes to the general-knowledge path. Gateway
// failures on the symbol path produce an unavailability note instead of an
// error.
func (a *Advisor) Ask(ctx context.Context, query models.Query) (*models.Response, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	augment := a.cfg.AugmentByDefault
	if query.Augment != nil {
		augment = *query.Augment
	}

	metrics := observability.GetMetrics()
	extracted := a.extractor.Extract(text)

	if !extracted.Resolved {
		metrics.RecordQueryRequest(pathGeneral)
		timer := metrics.NewTimer()
		resp := &models.Response{
			Text:  a.composer.ComposeGeneral(ctx, text, augment),
			Query: text,
		}
		timer.ObserveQuery(pathGeneral, "ok")
		return resp, nil
	}

	metrics.RecordQueryRequest(pathSymbol)
	timer := metrics.NewTimer()
	symbol := extracted.Symbol

	quote, rsi, err := a.fetchMarketData(ctx, symbol)
	if err != nil {
		observability.Warn("Market data unavailable", "symbol", symbol, "error", err)
		metrics.RecordDegradedResponse("data_unavailable")
		timer.ObserveQuery(pathSymbol, "degraded")
		return &models.Response{
			Text:   a.composer.ComposeUnavailable(symbol),
			Symbol: &symbol,
			Query:  text,
		}, nil
	}

	momentumState := a.classifier.ClassifyMomentum(quote.ChangePercent)
	rsiState := a.classifier.ClassifyRSI(rsi.Value)
	trend := a.classifier.TrendLabel(momentumState, rsiState)

	signals := a.aggregator.Signals(momentumState, rsiState)
	rec := a.aggregator.Aggregate(symbol, signals, rsi.Value, quote.ChangePercent)

	metrics.RecordRecommendation(string(rec.Action), rec.Confidence, string(rec.Risk))
	observability.WithSymbol(symbol).Info("Recommendation computed",
		"action", rec.Action, "confidence", rec.Confidence, "risk", rec.Risk)
	a.record(ctx, rec)

	rsiValue := rsi.Value
	resp := &models.Response{
		Text:   a.composer.ComposeAnalysis(ctx, text, quote, rsi, rsiState, trend, rec, augment),
		Symbol: &symbol,
		Query:  text,
		Data: &models.ResponseData{
			Price:          quote.Price,
			Change:         quote.Change,
			ChangePercent:  quote.ChangePercent,
			Volume:         quote.Volume,
			Trend:          trend,
			RSI:            &rsiValue,
			Recommendation: string(rec.Action),
		},
	}
	timer.ObserveQuery(pathSymbol, "ok")
	return resp, nil
}

// fetchMarketData fetches the quote and RSI under the market data timeout.
// Both must succeed; a partial result is treated as unavailable.
func (a *Advisor) fetchMarketData(ctx context.Context, symbol string) (*models.Quote, *models.IndicatorValue, error) {
	if a.marketData == nil {
		return nil, nil, errors.New("no market data provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.MarketDataTimeout)*time.Second)
	defer cancel()

	quote, err := a.marketData.GetQuote(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("quote for %s: %w", symbol, err)
	}
	rsi, err := a.marketData.GetRSI(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("rsi for %s: %w", symbol, err)
	}
	return quote, rsi, nil
}

func (a *Advisor) record(ctx context.Context, rec *models.Recommendation) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Record(ctx, rec); err != nil {
		observability.Warn("Failed to record recommendation",
			"symbol", rec.Symbol, "error", err)
	}
}
