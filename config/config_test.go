package config

import (
	"os"
	"testing"
)

// saveEnv saves current environment variables for restoration
func saveEnv(t *testing.T, keys []string) map[string]string {
	t.Helper()
	saved := make(map[string]string)
	for _, key := range keys {
		saved[key] = os.Getenv(key)
	}
	return saved
}

// restoreEnv restores previously saved environment variables
func restoreEnv(t *testing.T, saved map[string]string) {
	t.Helper()
	for key, val := range saved {
		if val == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, val)
		}
	}
}

// clearEnv clears environment variables
func clearEnv(t *testing.T, keys []string) {
	t.Helper()
	for _, key := range keys {
		os.Unsetenv(key)
	}
}

var allEnvKeys = []string{
	"DATABASE_URL",
	"OPENAI_API_KEY",
	"OPENAI_MODEL",
	"OPENAI_MAX_TOKENS",
	"AWS_REGION",
	"BEDROCK_MODEL_ID",
	"ALPHA_VANTAGE_API_KEY",
	"ALPACA_API_KEY",
	"ALPACA_API_SECRET",
	"ALPACA_BASE_URL",
	"MARKET_DATA_PROVIDER",
	"GENERATIVE_PROVIDER",
	"ADVISOR_RSI_PERIOD",
	"ADVISOR_RSI_OVERSOLD",
	"ADVISOR_RSI_OVERBOUGHT",
	"ADVISOR_MOMENTUM_THRESHOLD",
	"ADVISOR_MOMENTUM_WEIGHT",
	"ADVISOR_RSI_WEIGHT",
	"ADVISOR_SCORE_CUTOFF",
	"ADVISOR_HOLD_CONFIDENCE",
	"ADVISOR_TARGET_WORDS_MIN",
	"ADVISOR_TARGET_WORDS_MAX",
	"MARKET_DATA_TIMEOUT_SECONDS",
	"AUGMENT_TIMEOUT_SECONDS",
	"QUOTE_CACHE_TTL_SECONDS",
	"QUERY_CONCURRENCY_LIMIT",
	"AUGMENT_BY_DEFAULT",
	"EXTRACTOR_EXTRA_STOPWORDS",
	"EXTRACTOR_ALLOWLIST",
	"EXTRACTOR_MAX_SYMBOL_LEN",
	"PORT",
	"CORS_ALLOWED_ORIGINS",
}

func TestLoad_Defaults(t *testing.T) {
	saved := saveEnv(t, allEnvKeys)
	defer restoreEnv(t, saved)
	clearEnv(t, allEnvKeys)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("expected OpenAI.Model='gpt-4o-mini', got %s", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.MaxTokens != 500 {
		t.Errorf("expected OpenAI.MaxTokens=500, got %d", cfg.OpenAI.MaxTokens)
	}
	if cfg.Bedrock.Region != "us-east-1" {
		t.Errorf("expected Bedrock.Region='us-east-1', got %s", cfg.Bedrock.Region)
	}
	if cfg.Alpaca.BaseURL != "https://paper-api.alpaca.markets" {
		t.Errorf("expected Alpaca.BaseURL='https://paper-api.alpaca.markets', got %s", cfg.Alpaca.BaseURL)
	}
	if cfg.Providers.MarketData != "alphavantage" {
		t.Errorf("expected MarketData='alphavantage', got %s", cfg.Providers.MarketData)
	}
	if cfg.Providers.Generative != "openai" {
		t.Errorf("expected Generative='openai', got %s", cfg.Providers.Generative)
	}
	if cfg.Advisor.RSIPeriod != 14 {
		t.Errorf("expected RSIPeriod=14, got %d", cfg.Advisor.RSIPeriod)
	}
	if cfg.Advisor.RSIOversold != 30 {
		t.Errorf("expected RSIOversold=30, got %f", cfg.Advisor.RSIOversold)
	}
	if cfg.Advisor.RSIOverbought != 70 {
		t.Errorf("expected RSIOverbought=70, got %f", cfg.Advisor.RSIOverbought)
	}
	if cfg.Advisor.MomentumThreshold != 2.0 {
		t.Errorf("expected MomentumThreshold=2.0, got %f", cfg.Advisor.MomentumThreshold)
	}
	if cfg.Advisor.MomentumWeight != 0.6 {
		t.Errorf("expected MomentumWeight=0.6, got %f", cfg.Advisor.MomentumWeight)
	}
	if cfg.Advisor.RSIWeight != 0.7 {
		t.Errorf("expected RSIWeight=0.7, got %f", cfg.Advisor.RSIWeight)
	}
	if cfg.Advisor.ScoreCutoff != 1.0 {
		t.Errorf("expected ScoreCutoff=1.0, got %f", cfg.Advisor.ScoreCutoff)
	}
	if cfg.Advisor.HoldConfidence != 0.5 {
		t.Errorf("expected HoldConfidence=0.5, got %f", cfg.Advisor.HoldConfidence)
	}
	if cfg.Advisor.TargetWordsMin != 150 || cfg.Advisor.TargetWordsMax != 200 {
		t.Errorf("expected target words 150-200, got %d-%d", cfg.Advisor.TargetWordsMin, cfg.Advisor.TargetWordsMax)
	}
	if cfg.Advisor.ConcurrencyLimit != 8 {
		t.Errorf("expected ConcurrencyLimit=8, got %d", cfg.Advisor.ConcurrencyLimit)
	}
	if !cfg.Advisor.AugmentByDefault {
		t.Error("expected AugmentByDefault=true")
	}
	if cfg.Extractor.MaxSymbolLen != 5 {
		t.Errorf("expected MaxSymbolLen=5, got %d", cfg.Extractor.MaxSymbolLen)
	}
	if cfg.HTTP.Port != "8080" {
		t.Errorf("expected Port='8080', got %s", cfg.HTTP.Port)
	}
	if cfg.HTTP.CORSAllowedOrigins != "*" {
		t.Errorf("expected CORSAllowedOrigins='*', got %s", cfg.HTTP.CORSAllowedOrigins)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	saved := saveEnv(t, allEnvKeys)
	defer restoreEnv(t, saved)
	clearEnv(t, allEnvKeys)

	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("OPENAI_API_KEY", "sk-test")
	os.Setenv("OPENAI_MODEL", "gpt-4o")
	os.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	os.Setenv("ALPACA_API_KEY", "test-key")
	os.Setenv("ALPACA_API_SECRET", "test-secret")
	os.Setenv("ALPACA_BASE_URL", "https://api.alpaca.markets")
	os.Setenv("MARKET_DATA_PROVIDER", "alpaca")
	os.Setenv("GENERATIVE_PROVIDER", "bedrock")
	os.Setenv("ADVISOR_RSI_OVERSOLD", "25")
	os.Setenv("ADVISOR_RSI_OVERBOUGHT", "75")
	os.Setenv("ADVISOR_MOMENTUM_THRESHOLD", "3.5")
	os.Setenv("ADVISOR_SCORE_CUTOFF", "0.5")
	os.Setenv("QUERY_CONCURRENCY_LIMIT", "4")
	os.Setenv("EXTRACTOR_ALLOWLIST", "aapl, msft ,GOOG")
	os.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with custom values failed: %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/test" {
		t.Errorf("expected Database.URL='postgres://localhost/test', got %s", cfg.Database.URL)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("expected OpenAI.Model='gpt-4o', got %s", cfg.OpenAI.Model)
	}
	if cfg.Providers.MarketData != "alpaca" {
		t.Errorf("expected MarketData='alpaca', got %s", cfg.Providers.MarketData)
	}
	if cfg.Providers.Generative != "bedrock" {
		t.Errorf("expected Generative='bedrock', got %s", cfg.Providers.Generative)
	}
	if cfg.Advisor.RSIOversold != 25 {
		t.Errorf("expected RSIOversold=25, got %f", cfg.Advisor.RSIOversold)
	}
	if cfg.Advisor.RSIOverbought != 75 {
		t.Errorf("expected RSIOverbought=75, got %f", cfg.Advisor.RSIOverbought)
	}
	if cfg.Advisor.MomentumThreshold != 3.5 {
		t.Errorf("expected MomentumThreshold=3.5, got %f", cfg.Advisor.MomentumThreshold)
	}
	if cfg.Advisor.ScoreCutoff != 0.5 {
		t.Errorf("expected ScoreCutoff=0.5, got %f", cfg.Advisor.ScoreCutoff)
	}
	if cfg.Advisor.ConcurrencyLimit != 4 {
		t.Errorf("expected ConcurrencyLimit=4, got %d", cfg.Advisor.ConcurrencyLimit)
	}
	want := []string{"AAPL", "MSFT", "GOOG"}
	if len(cfg.Extractor.AllowList) != len(want) {
		t.Fatalf("expected allowlist %v, got %v", want, cfg.Extractor.AllowList)
	}
	for i, sym := range want {
		if cfg.Extractor.AllowList[i] != sym {
			t.Errorf("expected allowlist[%d]=%s, got %s", i, sym, cfg.Extractor.AllowList[i])
		}
	}
	if cfg.HTTP.CORSAllowedOrigins != "http://localhost:3000" {
		t.Errorf("expected CORSAllowedOrigins='http://localhost:3000', got %s", cfg.HTTP.CORSAllowedOrigins)
	}
}

func TestValidate_RSIBounds(t *testing.T) {
	saved := saveEnv(t, allEnvKeys)
	defer restoreEnv(t, saved)
	clearEnv(t, allEnvKeys)

	os.Setenv("ADVISOR_RSI_OVERSOLD", "70")
	os.Setenv("ADVISOR_RSI_OVERBOUGHT", "30")

	_, err := Load()
	if err == nil {
		t.Error("expected error when oversold bound is above overbought bound")
	}
}

func TestValidate_NegativeMomentumThreshold(t *testing.T) {
	cfg := NewTestConfig()
	cfg.Advisor.MomentumThreshold = -1

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative momentum threshold")
	}
}

func TestValidate_BadProvider(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "unknown market data provider",
			mutate: func(c *Config) { c.Providers.MarketData = "yahoo" },
		},
		{
			name:   "unknown generative provider",
			mutate: func(c *Config) { c.Providers.Generative = "gemini" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_WordRange(t *testing.T) {
	cfg := NewTestConfig()
	cfg.Advisor.TargetWordsMin = 200
	cfg.Advisor.TargetWordsMax = 150

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for inverted target word range")
	}
}

func TestHasDatabase(t *testing.T) {
	cfg := NewTestConfig()
	if cfg.HasDatabase() {
		t.Error("expected HasDatabase() to return false for empty URL")
	}

	cfg.Database.URL = "postgres://localhost/test"
	if !cfg.HasDatabase() {
		t.Error("expected HasDatabase() to return true for non-empty URL")
	}
}

func TestHasOpenAI(t *testing.T) {
	cfg := NewTestConfig()
	if cfg.HasOpenAI() {
		t.Error("expected HasOpenAI() to return false for empty key")
	}

	cfg.OpenAI.APIKey = "sk-test"
	if !cfg.HasOpenAI() {
		t.Error("expected HasOpenAI() to return true for non-empty key")
	}
}

func TestHasAlpaca(t *testing.T) {
	cfg := NewTestConfig()
	if cfg.HasAlpaca() {
		t.Error("expected HasAlpaca() to return false for empty config")
	}

	cfg.Alpaca.APIKey = "key"
	if cfg.HasAlpaca() {
		t.Error("expected HasAlpaca() to return false without secret")
	}

	cfg.Alpaca.APISecret = "secret"
	if !cfg.HasAlpaca() {
		t.Error("expected HasAlpaca() to return true for complete config")
	}
}

func TestHasAlphaVantage(t *testing.T) {
	cfg := NewTestConfig()
	if cfg.HasAlphaVantage() {
		t.Error("expected HasAlphaVantage() to return false for empty key")
	}

	cfg.AlphaVantage.APIKey = "key"
	if !cfg.HasAlphaVantage() {
		t.Error("expected HasAlphaVantage() to return true for non-empty key")
	}
}

func TestGetEnvString(t *testing.T) {
	key := "TEST_GET_ENV_STRING"
	defer os.Unsetenv(key)

	// Empty returns default
	os.Unsetenv(key)
	if got := getEnvString(key, "default"); got != "default" {
		t.Errorf("expected 'default', got %s", got)
	}

	// Set value returns value
	os.Setenv(key, "custom")
	if got := getEnvString(key, "default"); got != "custom" {
		t.Errorf("expected 'custom', got %s", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_GET_ENV_INT"
	defer os.Unsetenv(key)

	// Empty returns default
	os.Unsetenv(key)
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	// Valid integer
	os.Setenv(key, "100")
	if got := getEnvInt(key, 42); got != 100 {
		t.Errorf("expected 100, got %d", got)
	}

	// Invalid integer returns default
	os.Setenv(key, "invalid")
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42 for invalid value, got %d", got)
	}

	// Negative returns default
	os.Setenv(key, "-5")
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42 for negative value, got %d", got)
	}

	// Zero returns default
	os.Setenv(key, "0")
	if got := getEnvInt(key, 42); got != 42 {
		t.Errorf("expected 42 for zero value, got %d", got)
	}
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_GET_ENV_FLOAT"
	defer os.Unsetenv(key)

	// Empty returns default
	os.Unsetenv(key)
	if got := getEnvFloat(key, 0.5); got != 0.5 {
		t.Errorf("expected 0.5, got %f", got)
	}

	// Valid float
	os.Setenv(key, "0.75")
	if got := getEnvFloat(key, 0.5); got != 0.75 {
		t.Errorf("expected 0.75, got %f", got)
	}

	// Invalid float returns default
	os.Setenv(key, "invalid")
	if got := getEnvFloat(key, 0.5); got != 0.5 {
		t.Errorf("expected 0.5 for invalid value, got %f", got)
	}

	// Out of range (> 1) returns default
	os.Setenv(key, "1.5")
	if got := getEnvFloat(key, 0.5); got != 0.5 {
		t.Errorf("expected 0.5 for value > 1, got %f", got)
	}

	// Negative returns default
	os.Setenv(key, "-0.1")
	if got := getEnvFloat(key, 0.5); got != 0.5 {
		t.Errorf("expected 0.5 for negative value, got %f", got)
	}
}

func TestGetEnvList(t *testing.T) {
	key := "TEST_GET_ENV_LIST"
	defer os.Unsetenv(key)

	// Empty returns nil
	os.Unsetenv(key)
	if got := getEnvList(key); got != nil {
		t.Errorf("expected nil, got %v", got)
	}

	// Entries are trimmed, uppercased, and empties dropped
	os.Setenv(key, " aapl ,MSFT,, goog")
	got := getEnvList(key)
	want := []string{"AAPL", "MSFT", "GOOG"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %s at index %d, got %s", want[i], i, got[i])
		}
	}
}
