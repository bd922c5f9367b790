package advisor

import (
	"fmt"
	"math"
	"strings"

	"stock-advisor/config"
	"stock-advisor/models"
)

// Signal source labels.
const (
	SignalSourceMomentum = "momentum"
	SignalSourceRSI      = "rsi"
)

// SignalAggregator turns classified indicator states into weighted votes and
// combines them into a recommendation.
type SignalAggregator struct {
	cfg config.AdvisorConfig
}

func NewSignalAggregator(cfg config.AdvisorConfig) *SignalAggregator {
	return &SignalAggregator{cfg: cfg}
}

// Signals converts indicator states into directional votes. Neutral states
// contribute nothing.
func (a *SignalAggregator) Signals(momentum models.MomentumState, rsi models.RSIState) []models.Signal {
	var signals []models.Signal

	switch momentum {
	case models.MomentumBullish:
		signals = append(signals, models.Signal{Direction: models.SignalBuy, Weight: a.cfg.MomentumWeight, Source: SignalSourceMomentum})
	case models.MomentumBearish:
		signals = append(signals, models.Signal{Direction: models.SignalSell, Weight: a.cfg.MomentumWeight, Source: SignalSourceMomentum})
	}

	switch rsi {
	case models.RSIOversold:
		signals = append(signals, models.Signal{Direction: models.SignalBuy, Weight: a.cfg.RSIWeight, Source: SignalSourceRSI})
	case models.RSIOverbought:
		signals = append(signals, models.Signal{Direction: models.SignalSell, Weight: a.cfg.RSIWeight, Source: SignalSourceRSI})
	}

	return signals
}

// Aggregate sums the directional votes and produces a recommendation. The
// winning side must strictly exceed both the losing side and the score cutoff,
// otherwise the action is HOLD at the configured hold confidence. Confidence
// for BUY/SELL is the winning score capped at 1.0.
func (a *SignalAggregator) Aggregate(symbol string, signals []models.Signal, rsiValue, momentumPct float64) *models.Recommendation {
	var buyScore, sellScore float64
	for _, s := range signals {
		switch s.Direction {
		case models.SignalBuy:
			buyScore += s.Weight
		case models.SignalSell:
			sellScore += s.Weight
		}
	}

	action := models.RecommendationActionHold
	confidence := a.cfg.HoldConfidence
	switch {
	case buyScore > sellScore && buyScore > a.cfg.ScoreCutoff:
		action = models.RecommendationActionBuy
		confidence = math.Min(buyScore, 1.0)
	case sellScore > buyScore && sellScore > a.cfg.ScoreCutoff:
		action = models.RecommendationActionSell
		confidence = math.Min(sellScore, 1.0)
	}

	rec := models.NewRecommendation(symbol, action)
	rec.Confidence = confidence
	rec.BuyScore = buyScore
	rec.SellScore = sellScore
	rsi := rsiValue
	rec.RSI = &rsi
	rec.MomentumPct = momentumPct
	rec.Risk = a.risk(signals, rsiValue)
	rec.Rationale = rationale(signals)

	return rec
}

// risk grades the recommendation. An RSI extreme always means HIGH regardless
// of the action; a directional vote without an RSI extreme is MEDIUM; no
// votes at all is LOW.
func (a *SignalAggregator) risk(signals []models.Signal, rsiValue float64) models.RiskLevel {
	if rsiValue < a.cfg.RSIOversold || rsiValue > a.cfg.RSIOverbought {
		return models.RiskHigh
	}
	if len(signals) > 0 {
		return models.RiskMedium
	}
	return models.RiskLow
}

func rationale(signals []models.Signal) string {
	if len(signals) == 0 {
		return "no momentum or RSI signal fired"
	}
	parts := make([]string, 0, len(signals))
	for _, s := range signals {
		parts = append(parts, fmt.Sprintf("%s voted %s (weight %.1f)", s.Source, s.Direction, s.Weight))
	}
	return strings.Join(parts, "; ")
}
