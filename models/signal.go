package models

// SignalDirection is the directional vote carried by a signal.
type SignalDirection string

const (
	SignalBuy     SignalDirection = "buy"
	SignalSell    SignalDirection = "sell"
	SignalNeutral SignalDirection = "neutral"
)

// Signal is a directional vote with a confidence weight in (0, 1].
// Signals are immutable once created; they are only aggregated.
type Signal struct {
	Direction SignalDirection `json:"direction"`
	Weight    float64         `json:"weight"`
	Source    string          `json:"source"`
}

// RSIState is the categorical classification of an RSI reading.
type RSIState string

const (
	RSIOversold   RSIState = "oversold"
	RSIOverbought RSIState = "overbought"
	RSINeutral    RSIState = "neutral"
)

// MomentumState is the categorical classification of a price percentage change.
type MomentumState string

const (
	MomentumBullish MomentumState = "bullish"
	MomentumBearish MomentumState = "bearish"
	MomentumNeutral MomentumState = "neutral"
)
