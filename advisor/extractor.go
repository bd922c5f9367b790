package advisor

import (
	"strings"

	"stock-advisor/config"
	"stock-advisor/models"
)

// SymbolExtractor pulls a ticker symbol out of free query text. Tokens are
// uppercased alphabetic runs; a stop word list filters out English words that
// happen to look like tickers.
type SymbolExtractor struct {
	stopWords map[string]struct{}
	allowList map[string]struct{}
	maxLen    int
}

// NewSymbolExtractor builds an extractor from configuration. Extra stop words
// extend the built-in list; allow-listed symbols bypass it entirely.
func NewSymbolExtractor(cfg config.ExtractorConfig) *SymbolExtractor {
	stop := make(map[string]struct{}, len(defaultStopWords)+len(cfg.ExtraStopWords))
	for w := range defaultStopWords {
		stop[w] = struct{}{}
	}
	for _, w := range cfg.ExtraStopWords {
		stop[strings.ToUpper(w)] = struct{}{}
	}

	allow := make(map[string]struct{}, len(cfg.AllowList))
	for _, w := range cfg.AllowList {
		allow[strings.ToUpper(w)] = struct{}{}
	}

	maxLen := cfg.MaxSymbolLen
	if maxLen <= 0 {
		maxLen = 5
	}

	return &SymbolExtractor{stopWords: stop, allowList: allow, maxLen: maxLen}
}

// Extract returns the ticker candidate for the query. The first allow-listed
// token wins outright; otherwise the first token that survives the length and
// stop word filters is used. Resolved is false when nothing survives.
func (e *SymbolExtractor) Extract(query string) models.ExtractedSymbol {
	tokens := tokenize(strings.ToUpper(query))

	first := ""
	for _, tok := range tokens {
		if len(tok) > e.maxLen {
			continue
		}
		if _, ok := e.allowList[tok]; ok {
			return models.ExtractedSymbol{Symbol: tok, Resolved: true}
		}
		if _, ok := e.stopWords[tok]; ok {
			continue
		}
		if first == "" {
			first = tok
		}
	}

	if first != "" {
		return models.ExtractedSymbol{Symbol: first, Resolved: true}
	}
	return models.ExtractedSymbol{}
}

// tokenize splits uppercased text into maximal runs of ASCII letters.
// Digits and punctuation break runs, so "BRK.B" yields "BRK" and "B".
func tokenize(text string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 'A' && c <= 'Z' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}
