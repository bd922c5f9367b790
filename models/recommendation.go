package models

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationAction is the bounded action space of the aggregator.
type RecommendationAction string

const (
	RecommendationActionBuy  RecommendationAction = "BUY"
	RecommendationActionSell RecommendationAction = "SELL"
	RecommendationActionHold RecommendationAction = "HOLD"
)

// RiskLevel labels the risk implied by indicator extremity.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendation is the deterministic output of signal aggregation.
// It is recreated on every request and never mutated.
type Recommendation struct {
	ID          uuid.UUID            `json:"id"`
	Symbol      string               `json:"symbol"`
	Action      RecommendationAction `json:"action"`
	Confidence  float64              `json:"confidence"`
	Risk        RiskLevel            `json:"risk"`
	Rationale   string               `json:"rationale"`
	BuyScore    float64              `json:"buy_score"`
	SellScore   float64              `json:"sell_score"`
	RSI         *float64             `json:"rsi,omitempty"`
	MomentumPct float64              `json:"momentum_pct"`
	CreatedAt   time.Time            `json:"created_at"`
}

// NewRecommendation creates a recommendation with a fresh ID and timestamp.
func NewRecommendation(symbol string, action RecommendationAction) *Recommendation {
	return &Recommendation{
		ID:        uuid.New(),
		Symbol:    symbol,
		Action:    action,
		CreatedAt: time.Now(),
	}
}
