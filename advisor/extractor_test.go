package advisor

import (
	"testing"

	"stock-advisor/config"
)

func TestExtract(t *testing.T) {
	extractor := NewSymbolExtractor(config.NewTestConfig().Extractor)

	tests := []struct {
		name         string
		query        string
		wantSymbol   string
		wantResolved bool
	}{
		{"simple ticker", "should I buy AAPL", "AAPL", true},
		{"lowercase ticker", "is tsla a good investment", "TSLA", true},
		{"first candidate wins", "compare NVDA and MSFT", "NVDA", true},
		{"stop words only", "what should I buy", "", false},
		{"articles filtered", "what is the best stock to buy", "", false},
		{"pronouns filtered", "can you explain dividends", "", false},
		{"trading vocabulary filtered", "best penny stocks to watch", "", false},
		{"ticker after stop words", "tell me about the stock GOOGL", "GOOGL", true},
		{"too long token skipped", "COMPANIES like AMZN", "AMZN", true},
		{"punctuation splits tokens", "price of AMD?", "AMD", true},
		{"empty query", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractor.Extract(tt.query)
			if got.Resolved != tt.wantResolved {
				t.Errorf("Resolved = %v, want %v", got.Resolved, tt.wantResolved)
			}
			if got.Symbol != tt.wantSymbol {
				t.Errorf("Symbol = %q, want %q", got.Symbol, tt.wantSymbol)
			}
		})
	}
}

func TestExtract_AllowListBypassesStopWords(t *testing.T) {
	cfg := config.NewTestConfig().Extractor
	cfg.AllowList = []string{"ALL"}
	extractor := NewSymbolExtractor(cfg)

	got := extractor.Extract("tell me all about the market")
	if !got.Resolved || got.Symbol != "ALL" {
		t.Errorf("Extract() = %+v, want ALL resolved via allow list", got)
	}
}

func TestExtract_AllowListWinsOverEarlierCandidate(t *testing.T) {
	cfg := config.NewTestConfig().Extractor
	cfg.AllowList = []string{"MSFT"}
	extractor := NewSymbolExtractor(cfg)

	// NVDA appears first, but the allow-listed MSFT takes priority
	got := extractor.Extract("compare NVDA and MSFT")
	if got.Symbol != "MSFT" {
		t.Errorf("Symbol = %q, want MSFT", got.Symbol)
	}
}

func TestExtract_ExtraStopWords(t *testing.T) {
	cfg := config.NewTestConfig().Extractor
	cfg.ExtraStopWords = []string{"ETF"}
	extractor := NewSymbolExtractor(cfg)

	got := extractor.Extract("which ETF is worth holding")
	if got.Resolved && got.Symbol == "ETF" {
		t.Error("extra stop word should not resolve as a symbol")
	}
}

func TestExtract_MaxSymbolLen(t *testing.T) {
	cfg := config.NewTestConfig().Extractor
	cfg.MaxSymbolLen = 4

	extractor := NewSymbolExtractor(cfg)
	got := extractor.Extract("thoughts on GOOGL and AMD")
	if got.Symbol != "AMD" {
		t.Errorf("Symbol = %q, want AMD (GOOGL exceeds the max length)", got.Symbol)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"words and punctuation", "BUY AAPL, NOW!", []string{"BUY", "AAPL", "NOW"}},
		{"digits break runs", "BRK2B", []string{"BRK", "B"}},
		{"empty", "", nil},
		{"only punctuation", "?!.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
