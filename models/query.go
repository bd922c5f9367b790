package models

import "github.com/shopspring/decimal"

// Query is a single free-text question about the market, scoped to one request.
// Augment is nil when the caller did not specify a preference; the configured
// default applies in that case.
type Query struct {
	Text    string `json:"query"`
	Augment *bool  `json:"augment,omitempty"`
}

// ExtractedSymbol is the result of ticker extraction from query text.
// Resolved is false when no candidate survived filtering, which routes the
// query to the general-knowledge path.
type ExtractedSymbol struct {
	Symbol   string `json:"symbol"`
	Resolved bool   `json:"resolved"`
}

// ResponseData echoes the market data behind a symbol-path answer.
type ResponseData struct {
	Price          decimal.Decimal `json:"price"`
	Change         decimal.Decimal `json:"change"`
	ChangePercent  float64         `json:"change_percent"`
	Volume         int64           `json:"volume"`
	Trend          string          `json:"trend"`
	RSI            *float64        `json:"rsi,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
}

// Response is the final answer returned for a query.
type Response struct {
	Text   string        `json:"response"`
	Symbol *string       `json:"symbol"`
	Query  string        `json:"query"`
	Data   *ResponseData `json:"data,omitempty"`
}
