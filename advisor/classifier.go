package advisor

import (
	"fmt"

	"stock-advisor/config"
	"stock-advisor/models"
)

// IndicatorClassifier maps raw indicator readings onto categorical states
// using configured thresholds. Comparisons are strict, so a reading exactly
// at a threshold is neutral.
type IndicatorClassifier struct {
	cfg config.AdvisorConfig
}

func NewIndicatorClassifier(cfg config.AdvisorConfig) *IndicatorClassifier {
	return &IndicatorClassifier{cfg: cfg}
}

// ClassifyRSI labels an RSI reading as oversold, overbought, or neutral.
func (c *IndicatorClassifier) ClassifyRSI(value float64) models.RSIState {
	switch {
	case value < c.cfg.RSIOversold:
		return models.RSIOversold
	case value > c.cfg.RSIOverbought:
		return models.RSIOverbought
	default:
		return models.RSINeutral
	}
}

// ClassifyMomentum labels a day-over-day percent change as bullish, bearish,
// or neutral based on the momentum threshold magnitude.
func (c *IndicatorClassifier) ClassifyMomentum(changePercent float64) models.MomentumState {
	switch {
	case changePercent > c.cfg.MomentumThreshold:
		return models.MomentumBullish
	case changePercent < -c.cfg.MomentumThreshold:
		return models.MomentumBearish
	default:
		return models.MomentumNeutral
	}
}

// TrendLabel renders a display label from both states. The momentum state is
// the base; an RSI extreme is appended as a qualifier. Display only, never
// used for scoring.
func (c *IndicatorClassifier) TrendLabel(momentum models.MomentumState, rsi models.RSIState) string {
	if rsi == models.RSIOverbought || rsi == models.RSIOversold {
		return fmt.Sprintf("%s (%s)", momentum, rsi)
	}
	return string(momentum)
}
