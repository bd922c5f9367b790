package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents a point-in-time quote for a stock. It is supplied by the
// market data gateway and treated as read-only.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent float64         `json:"change_percent"`
	Volume        int64           `json:"volume"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	PrevClose     decimal.Decimal `json:"previous_close"`
	Timestamp     time.Time       `json:"timestamp"`
}

// IndicatorValue is a single named technical indicator reading.
type IndicatorValue struct {
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// IndicatorRSI is the 14-period relative strength index.
const IndicatorRSI = "RSI"
