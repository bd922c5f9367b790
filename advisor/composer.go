package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stock-advisor/config"
	"stock-advisor/models"
	"stock-advisor/observability"
	"stock-advisor/services"
)

// Disclaimer is appended to every piece of advice, augmented or not.
const Disclaimer = "This is not financial advice. Please consult a licensed financial advisor before making investment decisions."

// generalFallback answers general questions when no generative backend is
// available or the backend call fails.
const generalFallback = "I can help you analyze specific stocks. Please mention a stock ticker symbol (e.g., AAPL, TSLA, MSFT) and I'll provide real-time analysis."

// ResponseComposer renders the final answer text, optionally elaborated by a
// generative backend. The backend is best-effort: composition never fails, it
// falls back to deterministic text.
type ResponseComposer struct {
	llm services.LLMService // nil disables augmentation
	cfg config.AdvisorConfig
}

func NewResponseComposer(llm services.LLMService, cfg config.AdvisorConfig) *ResponseComposer {
	return &ResponseComposer{llm: llm, cfg: cfg}
}

// ComposeAnalysis builds the symbol-path answer. When augmentation is
// requested and the backend responds in time, its elaboration replaces the
// deterministic summary body. The disclaimer is appended either way.
func (c *ResponseComposer) ComposeAnalysis(ctx context.Context, query string, quote *models.Quote, rsi *models.IndicatorValue, rsiState models.RSIState, trend string, rec *models.Recommendation, augment bool) string {
	body := c.summary(quote, rsi, rsiState, trend, rec)

	if augment && c.llm != nil {
		system, user := c.analysisPrompt(query, quote, rsi, rsiState, trend, rec)
		text, err := c.augment(ctx, system, user)
		if err != nil {
			observability.Warn("Augmentation failed, using deterministic summary",
				"symbol", quote.Symbol, "error", err)
			observability.GetMetrics().RecordDegradedResponse("augmentation_failed")
		} else {
			body = text
		}
	}

	return body + "\n\n" + Disclaimer
}

// ComposeGeneral answers a query with no resolvable symbol. The generative
// backend handles it when available; otherwise a static pointer to the
// symbol path is returned.
func (c *ResponseComposer) ComposeGeneral(ctx context.Context, query string, augment bool) string {
	if augment && c.llm != nil {
		system, user := c.generalPrompt(query)
		text, err := c.augment(ctx, system, user)
		if err != nil {
			observability.Warn("General augmentation failed, using fallback", "error", err)
			observability.GetMetrics().RecordDegradedResponse("augmentation_failed")
		} else {
			return text + "\n\n" + Disclaimer
		}
	}
	return generalFallback + "\n\n" + Disclaimer
}

// ComposeUnavailable builds the degraded answer when market data could not be
// fetched. It carries no recommendation and no data echo.
func (c *ResponseComposer) ComposeUnavailable(symbol string) string {
	return fmt.Sprintf("I couldn't find valid stock data for %s. The symbol may be invalid or market data is temporarily unavailable. Please try again in a moment.", symbol)
}

// summary is the deterministic answer body built purely from fetched data.
func (c *ResponseComposer) summary(quote *models.Quote, rsi *models.IndicatorValue, rsiState models.RSIState, trend string, rec *models.Recommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Analysis\n\n", quote.Symbol)
	fmt.Fprintf(&b, "Current Price: $%s (%s, %s%%)\n",
		quote.Price.StringFixed(2), signedFixed(quote.Change.InexactFloat64()), signedFixed(quote.ChangePercent))
	fmt.Fprintf(&b, "Volume: %d\n", quote.Volume)
	fmt.Fprintf(&b, "Trend: %s\n", trend)
	fmt.Fprintf(&b, "RSI (%d): %.2f - %s\n\n", c.cfg.RSIPeriod, rsi.Value, rsiState)
	fmt.Fprintf(&b, "Recommendation: %s (confidence %.2f, risk %s)\n", rec.Action, rec.Confidence, rec.Risk)
	fmt.Fprintf(&b, "Signals: %s", rec.Rationale)

	return b.String()
}

func (c *ResponseComposer) analysisPrompt(query string, quote *models.Quote, rsi *models.IndicatorValue, rsiState models.RSIState, trend string, rec *models.Recommendation) (string, string) {
	system := fmt.Sprintf("You are a helpful stock market advisor. Provide clear, concise analysis of stocks based on real-time data. Keep responses between %d and %d words. Do not add your own disclaimer.",
		c.cfg.TargetWordsMin, c.cfg.TargetWordsMax)

	user := fmt.Sprintf(`Stock: %s
Current Price: $%s
Change: %s (%s%%)
Volume: %d
Trend: %s
RSI: %.2f (%s)
Technical Recommendation: %s

User Question: %s

Provide a concise analysis addressing the user's question. Include the technical recommendation and the key signals behind it.`,
		quote.Symbol, quote.Price.StringFixed(2),
		signedFixed(quote.Change.InexactFloat64()), signedFixed(quote.ChangePercent),
		quote.Volume, trend, rsi.Value, rsiState, rec.Action, query)

	return system, user
}

func (c *ResponseComposer) generalPrompt(query string) (string, string) {
	system := fmt.Sprintf("You are a helpful stock market advisor. Keep responses between %d and %d words. Do not add your own disclaimer.",
		c.cfg.TargetWordsMin, c.cfg.TargetWordsMax)

	user := fmt.Sprintf("%s\n\nThis is a general stock market question. Provide helpful advice about stock trading, market analysis, or investment strategies. Keep it concise and actionable.", query)
	return system, user
}

// augment calls the generative backend under the configured timeout.
func (c *ResponseComposer) augment(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.AugmentTimeout)*time.Second)
	defer cancel()

	text, err := c.llm.InvokeWithPrompt(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("generative backend returned empty text")
	}
	return text, nil
}

// signedFixed formats a float with two decimals and an explicit sign.
func signedFixed(v float64) string {
	return fmt.Sprintf("%+.2f", v)
}
